package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rish2311/BookStore-Assignment/internal/models"
)

type MetricsHandler struct {
	BookCol *mongo.Collection
	UserCol *mongo.Collection
	TxnCol  *mongo.Collection
}

func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Catalog size and how much of it is out on loan
	totalBooks, _ := h.BookCol.CountDocuments(ctx, bson.M{})
	booksOnLoan, _ := h.BookCol.CountDocuments(ctx, bson.M{"available": false})

	// 2. Registered users
	totalUsers, _ := h.UserCol.CountDocuments(ctx, bson.M{})

	// 3. Loan ledger
	openTransactions, _ := h.TxnCol.CountDocuments(ctx, bson.M{"status": models.StatusIssued})
	closedTransactions, _ := h.TxnCol.CountDocuments(ctx, bson.M{"status": models.StatusReturned})

	// 4. Rent collected across all closed loans
	cursor, _ := h.TxnCol.Find(ctx, bson.M{"status": models.StatusReturned})
	var closed []models.Transaction
	_ = cursor.All(ctx, &closed)

	var rentCollected float64
	for _, txn := range closed {
		rentCollected += txn.Rent
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_books":         totalBooks,
		"books_on_loan":       booksOnLoan,
		"total_users":         totalUsers,
		"open_transactions":   openTransactions,
		"closed_transactions": closedTransactions,
		"rent_collected":      rentCollected,
	})
}
