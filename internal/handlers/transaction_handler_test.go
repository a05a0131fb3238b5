package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/rish2311/BookStore-Assignment/internal/handlers"
	"github.com/rish2311/BookStore-Assignment/internal/rental"
	"github.com/rish2311/BookStore-Assignment/internal/store"
)

func newTransactionHandler(mt *mtest.T) *handlers.TransactionHandler {
	catalog := store.NewCatalog(mt.Coll)
	ledger := store.NewLedger(mt.Coll)
	users := store.NewUsers(mt.Coll)
	return &handlers.TransactionHandler{
		Engine:  rental.New(catalog, ledger, users),
		Ledger:  ledger,
		Timeout: 5 * time.Second,
	}
}

func transactionRouter(h *handlers.TransactionHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/transactions", h.IssueBook).Methods("POST")
	router.HandleFunc("/api/transactions", h.GetTransactions).Methods("GET")
	router.HandleFunc("/api/transactions/{id}/return", h.ReturnBook).Methods("PUT")
	return router
}

func TestTransactionHandler_IssueBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing fields", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader([]byte("{}")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("invalid book id", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		reqBody := handlers.IssueRequest{
			BookID: "not-a-hex-id",
			UserID: primitive.NewObjectID().Hex(),
		}
		reqBytes, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("book not found", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		// Empty cursor: the book lookup resolves nothing.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.books", mtest.FirstBatch))

		reqBody := handlers.IssueRequest{
			BookID: primitive.NewObjectID().Hex(),
			UserID: primitive.NewObjectID().Hex(),
		}
		reqBytes, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", res.Status)
		}
	})
}

func TestTransactionHandler_ReturnBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("invalid transaction id", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		req := httptest.NewRequest(http.MethodPut, "/api/transactions/abc/return", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("invalid return date format", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		body := []byte(`{"returnDate":"yesterday"}`)
		url := "/api/transactions/" + primitive.NewObjectID().Hex() + "/return"
		req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("transaction not found", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.transactions", mtest.FirstBatch))

		url := "/api/transactions/" + primitive.NewObjectID().Hex() + "/return"
		req := httptest.NewRequest(http.MethodPut, url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", res.Status)
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("invalid status filter", func(mt *mtest.T) {
		router := transactionRouter(newTransactionHandler(mt))

		req := httptest.NewRequest(http.MethodGet, "/api/transactions?status=pending", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})
}
