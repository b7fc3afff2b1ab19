// File: database/repository/room/interface.go
package roomRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"sylt/database"
	"sylt/models"
)

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	Upsert(ctx context.Context, room *models.Room) error
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	db := database.DB()
	return &mongoRoomRepo{
		coll: db.Collection("rooms"),
	}
}
