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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/rish2311/BookStore-Assignment/internal/handlers"
	"github.com/rish2311/BookStore-Assignment/internal/models"
	"github.com/rish2311/BookStore-Assignment/internal/store"
	"github.com/rish2311/BookStore-Assignment/internal/utils"
)

func newBookHandler(mt *mtest.T) *handlers.BookHandler {
	return handlers.NewBookHandler(
		store.NewCatalog(mt.Coll),
		store.NewLedger(mt.Coll),
		utils.Logger{Collection: mt.Coll},
		5*time.Second,
	)
}

func bookRouter(h *handlers.BookHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/books", h.GetBooks).Methods("GET")
	router.HandleFunc("/api/books", h.AddBook).Methods("POST")
	router.HandleFunc("/api/books/{id}", h.GetBook).Methods("GET")
	router.HandleFunc("/api/books/{id}", h.UpdateBook).Methods("PUT")
	return router
}

func TestBookHandler_GetBooks(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful books retrieval", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "test.books", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "name", Value: "1984"},
				{Key: "category", Value: "Dystopian"},
				{Key: "rentPerDay", Value: 2.0},
				{Key: "available", Value: true},
			}),
			mtest.CreateCursorResponse(0, "test.books", mtest.NextBatch),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/books?category=dys", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected status OK, got %v", res.Status)
		}

		var payload struct {
			TotalBooks int           `json:"totalBooks"`
			Books      []models.Book `json:"books"`
		}
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if payload.TotalBooks != 1 || len(payload.Books) != 1 {
			t.Errorf("totalBooks = %d, books = %d; want 1, 1", payload.TotalBooks, len(payload.Books))
		}
	})

	mt.Run("invalid rentMin", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		req := httptest.NewRequest(http.MethodGet, "/api/books?rentMin=cheap", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})
}

func TestBookHandler_GetBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("invalid id", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		req := httptest.NewRequest(http.MethodGet, "/api/books/xyz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("book not found", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.books", mtest.FirstBatch))

		req := httptest.NewRequest(http.MethodGet, "/api/books/"+primitive.NewObjectID().Hex(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", res.Status)
		}
	})
}

func TestBookHandler_AddBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing required fields", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader([]byte("{}")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("negative rentPerDay", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		book := models.Book{Name: "1984", Category: "Dystopian", RentPerDay: -1}
		reqBytes, _ := json.Marshal(book)
		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(reqBytes))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})
}

func TestBookHandler_UpdateBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("availability is not writable", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		// After stripping the engine-owned field nothing is left to update.
		body := []byte(`{"available": true}`)
		url := "/api/books/" + primitive.NewObjectID().Hex()
		req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("negative rentPerDay rejected", func(mt *mtest.T) {
		router := bookRouter(newBookHandler(mt))

		body := []byte(`{"rentPerDay": -3}`)
		url := "/api/books/" + primitive.NewObjectID().Hex()
		req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})
}
