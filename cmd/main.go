package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/rish2311/BookStore-Assignment/configs"
	"github.com/rish2311/BookStore-Assignment/internal/daemon"
	"github.com/rish2311/BookStore-Assignment/internal/db"
	"github.com/rish2311/BookStore-Assignment/internal/handlers"
	"github.com/rish2311/BookStore-Assignment/internal/middleware"
	"github.com/rish2311/BookStore-Assignment/internal/rental"
	"github.com/rish2311/BookStore-Assignment/internal/store"
	"github.com/rish2311/BookStore-Assignment/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()

	client, err := db.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	utils.InitJwtSecret(cfg.JWTSecret)

	timeout := time.Duration(cfg.RequestTimeout) * time.Second

	auditLogger := utils.Logger{Collection: client.Collection("audit_logs")}

	catalog := store.NewCatalog(client.Collection("books"))
	ledger := store.NewLedger(client.Collection("transactions"))
	users := store.NewUsers(client.Collection("users"))

	engine := rental.New(catalog, ledger, users)

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	txnHandler := &handlers.TransactionHandler{
		Engine:      engine,
		Ledger:      ledger,
		AuditLogger: auditLogger,
		Timeout:     timeout,
	}

	r.HandleFunc("/api/transactions", txnHandler.IssueBook).Methods("POST")
	r.HandleFunc("/api/transactions", txnHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/transactions/{id}/return", txnHandler.ReturnBook).Methods("PUT")

	bookHandler := handlers.NewBookHandler(catalog, ledger, auditLogger, timeout)

	r.HandleFunc("/api/books", bookHandler.GetBooks).Methods("GET")
	r.HandleFunc("/api/books/{id}", bookHandler.GetBook).Methods("GET")

	userHandler := &handlers.UserHandler{
		Users:       users,
		AuditLogger: auditLogger,
		Timeout:     timeout,
	}

	r.HandleFunc("/api/user", userHandler.GetUsers).Methods("GET")
	r.HandleFunc("/api/user/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/api/user/login", userHandler.Login).Methods("POST")

	metricsHandler := handlers.MetricsHandler{
		BookCol: client.Collection("books"),
		UserCol: client.Collection("users"),
		TxnCol:  client.Collection("transactions"),
	}

	adminRouter := r.PathPrefix("/").Subrouter()
	adminRouter.Use(middleware.JWTAuthMiddleware, middleware.AdminOnly)

	adminRouter.HandleFunc("/api/books", bookHandler.AddBook).Methods("POST")
	adminRouter.HandleFunc("/api/books/{id}", bookHandler.UpdateBook).Methods("PUT")
	adminRouter.HandleFunc("/api/books/{id}", bookHandler.DeleteBook).Methods("DELETE")
	adminRouter.HandleFunc("/api/admin/metrics", metricsHandler.GetMetrics).Methods("GET")

	daemonCtx, stopDaemon := context.WithCancel(context.Background())
	exporter := daemon.LogExporter{Coll: client.Collection("audit_logs")}
	exporter.Run(daemonCtx)

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	stopDaemon()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}
