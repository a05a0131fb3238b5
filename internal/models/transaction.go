package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionStatus string

const (
	StatusIssued   TransactionStatus = "issued"
	StatusReturned TransactionStatus = "returned"

	TransactionEntity = "transaction"
)

// Transaction records one book held by one user between an issue time and,
// once closed, a return time. ReturnDate is nil and Rent is zero while the
// loan is open; both are set exactly once on return.
type Transaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Book       primitive.ObjectID `bson:"book" json:"bookId"`
	User       primitive.ObjectID `bson:"user" json:"userId"`
	IssueDate  time.Time          `bson:"issueDate" json:"issueDate"`
	ReturnDate *time.Time         `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	Rent       float64            `bson:"rent" json:"rent"`
	Status     TransactionStatus  `bson:"status" json:"status"`
}

var ValidTransactionStatuses = map[string]bool{
	string(StatusIssued):   true,
	string(StatusReturned): true,
}

func IsValidTransactionStatus(status string) bool {
	return ValidTransactionStatuses[status]
}
