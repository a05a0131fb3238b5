package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rish2311/BookStore-Assignment/internal/constants"
	"github.com/rish2311/BookStore-Assignment/internal/models"
	"github.com/rish2311/BookStore-Assignment/internal/rental"
	"github.com/rish2311/BookStore-Assignment/internal/store"
	"github.com/rish2311/BookStore-Assignment/internal/utils"
)

// TransactionHandler is the HTTP face of the rental engine: it parses
// issue/return requests and maps engine error codes onto statuses. All state
// rules live in the engine, not here.
type TransactionHandler struct {
	Engine      *rental.Engine
	Ledger      *store.Ledger
	AuditLogger utils.Logger
	Timeout     time.Duration
}

type IssueRequest struct {
	BookID string `json:"bookId"`
	UserID string `json:"userId"`
}

type ReturnRequest struct {
	ReturnDate string `json:"returnDate"`
}

func statusForCode(code rental.ErrCode) int {
	switch code {
	case rental.ErrNotFound:
		return http.StatusNotFound
	case rental.ErrBookUnavailable, rental.ErrAlreadyReturned:
		return http.StatusConflict
	case rental.ErrInvalidTime, rental.ErrValidation:
		return http.StatusBadRequest
	case rental.ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/transactions
func (h *TransactionHandler) IssueBook(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.BookID == "" || req.UserID == "" {
		utils.JSONError(w, "bookId and userId are required", http.StatusBadRequest)
		return
	}

	bookID, err := primitive.ObjectIDFromHex(req.BookID)
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.JSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	txn, err := h.Engine.IssueBook(ctx, bookID, userID)
	if err != nil {
		utils.JSONError(w, err.Error(), statusForCode(rental.Code(err)))
		return
	}

	h.AuditLogger.Log(context.Background(), models.TransactionEntity, constants.Issue, txn)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(txn)
}

// PUT /api/transactions/{id}/return
func (h *TransactionHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	txnID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid transaction ID", http.StatusBadRequest)
		return
	}

	var req ReturnRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.JSONError(w, "Invalid input", http.StatusBadRequest)
			return
		}
	}

	var returnTime time.Time
	if req.ReturnDate != "" {
		returnTime, err = time.Parse(time.RFC3339, req.ReturnDate)
		if err != nil {
			utils.JSONError(w, "Invalid returnDate, expected RFC3339", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	txn, err := h.Engine.ReturnBook(ctx, txnID, returnTime)
	if err != nil {
		utils.JSONError(w, err.Error(), statusForCode(rental.Code(err)))
		return
	}

	h.AuditLogger.Log(context.Background(), models.TransactionEntity, constants.Return, txn)

	json.NewEncoder(w).Encode(txn)
}

// GET /api/transactions
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidTransactionStatus(status) {
			utils.JSONError(w, "Invalid status", http.StatusBadRequest)
			return
		}
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	txns, err := h.Ledger.Find(ctx, filter)
	if err != nil {
		utils.JSONError(w, "Failed to fetch transactions", http.StatusServiceUnavailable)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"totalTransactions": len(txns),
		"transactions":      txns,
	})
}
