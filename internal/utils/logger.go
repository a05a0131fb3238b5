package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rish2311/BookStore-Assignment/internal/models"
)

// Logger writes one audit document per mutating operation. The exporter
// daemon picks up rows with exported=false.
type Logger struct {
	Collection *mongo.Collection
}

func (l *Logger) Log(ctx context.Context, entity, action string, data any) error {
	entry := models.AuditLog{
		Timestamp: time.Now(),
		Entity:    entity,
		Action:    action,
		Data:      data,
		Exported:  false,
	}
	_, err := l.Collection.InsertOne(ctx, entry)
	return err
}
