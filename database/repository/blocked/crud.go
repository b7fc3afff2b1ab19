// File: database/repository/blocked/crud.go
package blockedRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"sylt/models"
)

func (r *mongoBlockedRepo) GetByRoom(ctx context.Context, roomID string) ([]models.BlockedDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dates []models.BlockedDate
	if err := cursor.All(ctx, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *mongoBlockedRepo) ReplaceForSource(ctx context.Context, roomID string, source models.BookingSource, dates []models.BlockedDate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"roomId": roomID, "source": source}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return err
	}
	if len(dates) == 0 {
		return nil
	}

	docs := make([]interface{}, len(dates))
	for i, d := range dates {
		docs[i] = d
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}
