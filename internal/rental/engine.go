// Package rental owns the loan lifecycle: issuing a book, returning it, and
// the rent owed in between. It is stateless between calls; every invariant is
// enforced through conditional writes against the stores, so the guarantees
// hold across concurrent requests and across process instances sharing the
// same database.
package rental

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rish2311/BookStore-Assignment/internal/models"
	"github.com/rish2311/BookStore-Assignment/internal/store"
)

type CatalogStore interface {
	FindBookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, expected, value bool) error
}

type LedgerStore interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	CloseIfIssued(ctx context.Context, id primitive.ObjectID, returnDate time.Time, rent float64) error
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type Engine struct {
	catalog CatalogStore
	ledger  LedgerStore
	users   UserStore
	now     func() time.Time
}

func New(catalog CatalogStore, ledger LedgerStore, users UserStore) *Engine {
	return &Engine{
		catalog: catalog,
		ledger:  ledger,
		users:   users,
		now:     time.Now,
	}
}

// IssueBook opens a loan: it flips the book unavailable and records an issued
// transaction. The flip is guarded on the book still being available, so of
// any number of concurrent issues for the same book exactly one wins; the
// rest fail with ErrBookUnavailable and create nothing.
func (e *Engine) IssueBook(ctx context.Context, bookID, userID primitive.ObjectID) (*models.Transaction, error) {
	if bookID.IsZero() || userID.IsZero() {
		return nil, makeErr(ErrValidation, "bookId and userId are required")
	}

	book, err := e.catalog.FindBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound, "book not found")
		}
		return nil, makeErr(ErrStoreUnavailable, "book lookup failed")
	}

	if _, err := e.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound, "user not found")
		}
		return nil, makeErr(ErrStoreUnavailable, "user lookup failed")
	}

	if !book.Available {
		return nil, makeErr(ErrBookUnavailable, "book is already issued")
	}

	// Test-and-set on the availability flag. Losing this race means another
	// request issued the book between our read and this write.
	if err := e.catalog.SetAvailability(ctx, bookID, true, false); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, makeErr(ErrBookUnavailable, "book is already issued")
		}
		return nil, makeErr(ErrStoreUnavailable, "availability update failed")
	}

	txn := &models.Transaction{
		Book:      bookID,
		User:      userID,
		IssueDate: e.now().UTC(),
		Rent:      0,
		Status:    models.StatusIssued,
	}
	if err := e.ledger.Create(ctx, txn); err != nil {
		// Compensate the flip so a failed insert leaves no half-issued book.
		_ = e.catalog.SetAvailability(ctx, bookID, false, true)
		return nil, makeErr(ErrStoreUnavailable, "failed to record transaction")
	}

	return txn, nil
}

// ReturnBook closes a loan: it finalizes the transaction with the rent owed
// and frees the book. The close is guarded on status still being issued, so a
// second return of the same transaction fails with ErrAlreadyReturned and
// never overwrites the rent. A zero returnTime means now.
func (e *Engine) ReturnBook(ctx context.Context, txnID primitive.ObjectID, returnTime time.Time) (*models.Transaction, error) {
	if txnID.IsZero() {
		return nil, makeErr(ErrValidation, "transaction id is required")
	}
	if returnTime.IsZero() {
		returnTime = e.now()
	}
	returnTime = returnTime.UTC()

	txn, err := e.ledger.FindByID(ctx, txnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound, "transaction not found")
		}
		return nil, makeErr(ErrStoreUnavailable, "transaction lookup failed")
	}

	if txn.Status == models.StatusReturned {
		return nil, makeErr(ErrAlreadyReturned, "transaction is already returned")
	}
	if returnTime.Before(txn.IssueDate) {
		return nil, makeErr(ErrInvalidTime, "return time precedes issue time")
	}

	// Rate is read at return time: a rate correction between issue and
	// return changes the bill.
	book, err := e.catalog.FindBookByID(ctx, txn.Book)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, makeErr(ErrNotFound, "book not found")
		}
		return nil, makeErr(ErrStoreUnavailable, "book lookup failed")
	}

	rent := float64(RentalDays(txn.IssueDate, returnTime)) * book.RentPerDay

	if err := e.ledger.CloseIfIssued(ctx, txnID, returnTime, rent); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, makeErr(ErrAlreadyReturned, "transaction is already returned")
		}
		return nil, makeErr(ErrStoreUnavailable, "failed to close transaction")
	}

	// The transaction is closed; freeing the book must not undo that. A
	// condition failure here means the flag was already true, which needs no
	// further action.
	if err := e.catalog.SetAvailability(ctx, txn.Book, false, true); err != nil && !errors.Is(err, store.ErrConditionFailed) {
		return nil, makeErr(ErrStoreUnavailable, "failed to free book")
	}

	txn.Status = models.StatusReturned
	txn.ReturnDate = &returnTime
	txn.Rent = rent
	return txn, nil
}

// IsAvailable reports the book's availability flag, which by the issue/return
// guards above is false exactly while one open transaction references it.
func (e *Engine) IsAvailable(ctx context.Context, bookID primitive.ObjectID) (bool, error) {
	book, err := e.catalog.FindBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, makeErr(ErrNotFound, "book not found")
		}
		return false, makeErr(ErrStoreUnavailable, "book lookup failed")
	}
	return book.Available, nil
}

// RentalDays bills at day granularity, rounded up: any partial day counts as
// a whole day and a same-day return still counts as one.
func RentalDays(issueDate, returnDate time.Time) int {
	days := int(math.Ceil(returnDate.Sub(issueDate).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
