package utils

import (
	"log"

	"github.com/rish2311/BookStore-Assignment/internal/models"
)

func ExportData(logs []models.AuditLog) error {
	for _, entry := range logs {
		// change with actual calls
		log.Println(entry.Timestamp, entry.Entity, entry.Action)
	}
	return nil
}
