package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rish2311/BookStore-Assignment/internal/constants"
	"github.com/rish2311/BookStore-Assignment/internal/models"
	"github.com/rish2311/BookStore-Assignment/internal/store"
	"github.com/rish2311/BookStore-Assignment/internal/utils"
)

type BookHandler struct {
	Catalog     *store.Catalog
	Ledger      *store.Ledger
	AuditLogger utils.Logger
	Timeout     time.Duration
}

func NewBookHandler(catalog *store.Catalog, ledger *store.Ledger, logger utils.Logger, timeout time.Duration) *BookHandler {
	return &BookHandler{
		Catalog:     catalog,
		Ledger:      ledger,
		AuditLogger: logger,
		Timeout:     timeout,
	}
}

// GET /api/books?name=&category=&rentMin=&rentMax=
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}

	if name := r.URL.Query().Get("name"); name != "" {
		filter["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = bson.M{"$regex": category, "$options": "i"}
	}

	rentFilter := bson.M{}
	if rentMin := r.URL.Query().Get("rentMin"); rentMin != "" {
		val, err := strconv.ParseFloat(rentMin, 64)
		if err != nil {
			utils.JSONError(w, "Invalid rentMin value", http.StatusBadRequest)
			return
		}
		rentFilter["$gte"] = val
	}
	if rentMax := r.URL.Query().Get("rentMax"); rentMax != "" {
		val, err := strconv.ParseFloat(rentMax, 64)
		if err != nil {
			utils.JSONError(w, "Invalid rentMax value", http.StatusBadRequest)
			return
		}
		rentFilter["$lte"] = val
	}
	if len(rentFilter) > 0 {
		filter["rentPerDay"] = rentFilter
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	books, err := h.Catalog.Find(ctx, filter)
	if err != nil {
		utils.JSONError(w, "Failed to fetch books", http.StatusServiceUnavailable)
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"totalBooks": len(books),
		"books":      books,
	})
}

// GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	book, err := h.Catalog.FindBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, "Book not found", http.StatusNotFound)
			return
		}
		utils.JSONError(w, "Failed to fetch book", http.StatusServiceUnavailable)
		return
	}

	json.NewEncoder(w).Encode(book)
}

// POST /api/books
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if book.Name == "" || book.Category == "" {
		utils.JSONError(w, "name and category are required", http.StatusBadRequest)
		return
	}
	if book.RentPerDay < 0 {
		utils.JSONError(w, "rentPerDay must be non-negative", http.StatusBadRequest)
		return
	}

	book.ID = primitive.NilObjectID
	book.Available = true
	book.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Catalog.Insert(ctx, &book); err != nil {
		utils.JSONError(w, "Insert failed", http.StatusServiceUnavailable)
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Create, book)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

// PUT /api/books/{id}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	var updateData map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// Availability is owned by the rental engine and identifiers are
	// immutable; neither is writable through this route.
	delete(updateData, "available")
	delete(updateData, "_id")
	delete(updateData, "id")

	if len(updateData) == 0 {
		utils.JSONError(w, "No update fields provided", http.StatusBadRequest)
		return
	}

	if rent, ok := updateData["rentPerDay"]; ok {
		val, ok := rent.(float64)
		if !ok || val < 0 {
			utils.JSONError(w, "rentPerDay must be non-negative", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Catalog.UpdateFields(ctx, id, bson.M(updateData)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, "Book not found", http.StatusNotFound)
			return
		}
		utils.JSONError(w, "Update failed", http.StatusServiceUnavailable)
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Update, updateData)

	json.NewEncoder(w).Encode(map[string]string{"message": "Book updated successfully"})
}

// DELETE /api/books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	// A book with an open loan must outlive the loan record.
	open, err := h.Ledger.CountOpenForBook(ctx, id)
	if err != nil {
		utils.JSONError(w, "Failed to check open loans", http.StatusServiceUnavailable)
		return
	}
	if open > 0 {
		utils.JSONError(w, "Book is currently issued", http.StatusConflict)
		return
	}

	if err := h.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, "Book not found", http.StatusNotFound)
			return
		}
		utils.JSONError(w, "Delete failed", http.StatusServiceUnavailable)
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Delete, id.Hex())

	w.WriteHeader(http.StatusNoContent)
}
