// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"sylt/database"
	"sylt/models"
)

// BlockedDateRepository stores the blocked calendar days derived from
// external feeds.
type BlockedDateRepository interface {
	GetByRoom(ctx context.Context, roomID string) ([]models.BlockedDate, error)
	// ReplaceForSource atomically swaps all blocked dates a given feed source
	// contributed to a room. A sync run always replaces, never appends.
	ReplaceForSource(ctx context.Context, roomID string, source models.BookingSource, dates []models.BlockedDate) error
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo constructs a new MongoDB BlockedDateRepository.
func NewMongoBlockedRepo() BlockedDateRepository {
	db := database.DB()
	return &mongoBlockedRepo{
		coll: db.Collection("blocked_dates"),
	}
}
