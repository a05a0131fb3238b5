package daemon

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rish2311/BookStore-Assignment/internal/models"
	"github.com/rish2311/BookStore-Assignment/internal/utils"
)

// LogExporter ships audit rows that have not been exported yet and marks them
// exported. Runs until the passed context is cancelled.
type LogExporter struct {
	Coll     *mongo.Collection
	Interval time.Duration
}

func (l *LogExporter) Run(ctx context.Context) {
	interval := l.Interval
	if interval == 0 {
		interval = 30 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.exportPending(ctx)
			}
		}
	}()
}

func (l *LogExporter) exportPending(ctx context.Context) {
	res, err := l.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		return
	}

	var logs []models.AuditLog
	if err := res.All(ctx, &logs); err != nil || len(logs) == 0 {
		return
	}

	if err := utils.ExportData(logs); err != nil {
		return
	}

	updateIds := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		updateIds = append(updateIds, entry.ID)
	}

	l.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": updateIds}},
		bson.M{"$set": bson.M{"exported": true}},
	)
}
