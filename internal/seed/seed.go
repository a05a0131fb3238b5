// Package seed loads the demo dataset: five users, twenty books, and one
// pre-issued loan so the rental flow can be exercised right away.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/rish2311/BookStore-Assignment/internal/db"
	"github.com/rish2311/BookStore-Assignment/internal/models"
)

var users = []models.User{
	{Username: "alice", Email: "alice@example.com", Password: "password123", Role: models.RoleMember},
	{Username: "bob", Email: "bob@example.com", Password: "password123", Role: models.RoleMember},
	{Username: "charlie", Email: "charlie@example.com", Password: "password123", Role: models.RoleAdmin},
	{Username: "diana", Email: "diana@example.com", Password: "password123", Role: models.RoleMember},
	{Username: "edward", Email: "edward@example.com", Password: "password123", Role: models.RoleMember},
}

var books = []models.Book{
	{Name: "The Great Gatsby", Category: "Fiction", RentPerDay: 2.5, Author: "F. Scott Fitzgerald", PublishedYear: 1925},
	{Name: "To Kill a Mockingbird", Category: "Fiction", RentPerDay: 3, Author: "Harper Lee", PublishedYear: 1960},
	{Name: "1984", Category: "Dystopian", RentPerDay: 2, Author: "George Orwell", PublishedYear: 1949},
	{Name: "A Brief History of Time", Category: "Science", RentPerDay: 4, Author: "Stephen Hawking", PublishedYear: 1988},
	{Name: "The Art of Computer Programming", Category: "Technology", RentPerDay: 5, Author: "Donald Knuth", PublishedYear: 1968},
	{Name: "The Catcher in the Rye", Category: "Fiction", RentPerDay: 2.5, Author: "J.D. Salinger", PublishedYear: 1951},
	{Name: "Sapiens", Category: "History", RentPerDay: 3.5, Author: "Yuval Noah Harari", PublishedYear: 2011},
	{Name: "The Lord of the Rings", Category: "Fantasy", RentPerDay: 4.5, Author: "J.R.R. Tolkien", PublishedYear: 1954},
	{Name: "The Hobbit", Category: "Fantasy", RentPerDay: 3.5, Author: "J.R.R. Tolkien", PublishedYear: 1937},
	{Name: "Clean Code", Category: "Technology", RentPerDay: 4, Author: "Robert C. Martin", PublishedYear: 2008},
	{Name: "The Pragmatic Programmer", Category: "Technology", RentPerDay: 4.5, Author: "Andrew Hunt", PublishedYear: 1999},
	{Name: "Harry Potter and the Sorcerer's Stone", Category: "Fantasy", RentPerDay: 3, Author: "J.K. Rowling", PublishedYear: 1997},
	{Name: "The Alchemist", Category: "Fiction", RentPerDay: 2.5, Author: "Paulo Coelho", PublishedYear: 1988},
	{Name: "The Lean Startup", Category: "Business", RentPerDay: 3.5, Author: "Eric Ries", PublishedYear: 2011},
	{Name: "Thinking, Fast and Slow", Category: "Psychology", RentPerDay: 3, Author: "Daniel Kahneman", PublishedYear: 2011},
	{Name: "Introduction to Algorithms", Category: "Technology", RentPerDay: 5, Author: "Thomas H. Cormen", PublishedYear: 1990},
	{Name: "The Chronicles of Narnia", Category: "Fantasy", RentPerDay: 3.5, Author: "C.S. Lewis", PublishedYear: 1950},
	{Name: "Pride and Prejudice", Category: "Romance", RentPerDay: 2.5, Author: "Jane Austen", PublishedYear: 1813},
	{Name: "The Da Vinci Code", Category: "Thriller", RentPerDay: 3, Author: "Dan Brown", PublishedYear: 2003},
	{Name: "Brave New World", Category: "Dystopian", RentPerDay: 2, Author: "Aldous Huxley", PublishedYear: 1932},
}

func Run(ctx context.Context, client *db.Client) error {
	userCol := client.Collection("users")
	bookCol := client.Collection("books")
	txnCol := client.Collection("transactions")

	// Clear existing data
	for _, col := range []*mongo.Collection{userCol, bookCol, txnCol} {
		if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clearing %s: %w", col.Name(), err)
		}
	}
	log.Println("Cleared existing users, books, and transactions")

	// Unique indexes; registration relies on these to catch duplicates.
	_, err := userCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("creating user indexes: %w", err)
	}

	now := time.Now()

	userDocs := make([]interface{}, 0, len(users))
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.Username, err)
		}
		u.Password = string(hashed)
		u.RegisteredAt = now
		userDocs = append(userDocs, u)
	}
	if _, err := userCol.InsertMany(ctx, userDocs); err != nil {
		return fmt.Errorf("inserting users: %w", err)
	}
	log.Println("Inserted users")

	bookDocs := make([]interface{}, 0, len(books))
	for _, b := range books {
		b.Available = true
		b.CreatedAt = now
		bookDocs = append(bookDocs, b)
	}
	if _, err := bookCol.InsertMany(ctx, bookDocs); err != nil {
		return fmt.Errorf("inserting books: %w", err)
	}
	log.Println("Inserted books")

	// Alice has "1984" out on loan since 2024-01-01.
	var alice models.User
	if err := userCol.FindOne(ctx, bson.M{"username": "alice"}).Decode(&alice); err != nil {
		return fmt.Errorf("finding alice: %w", err)
	}
	var book1984 models.Book
	if err := bookCol.FindOne(ctx, bson.M{"name": "1984"}).Decode(&book1984); err != nil {
		return fmt.Errorf("finding 1984: %w", err)
	}

	txn := models.Transaction{
		Book:      book1984.ID,
		User:      alice.ID,
		IssueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Rent:      0,
		Status:    models.StatusIssued,
	}
	if _, err := txnCol.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	log.Println("Inserted transaction")

	if _, err := bookCol.UpdateOne(ctx,
		bson.M{"_id": book1984.ID},
		bson.M{"$set": bson.M{"available": false}},
	); err != nil {
		return fmt.Errorf("updating book availability: %w", err)
	}
	log.Println("Updated book availability")

	return nil
}
