package roomRepo

import (
	"context"

	"roombook/models"
)

// RoomRepository is the read-mostly room directory. Implementations must be
// safe for concurrent readers; rooms are effectively immutable while
// conversations are in flight.
type RoomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindByName(ctx context.Context, name string) (*models.Room, error)
	Seed(ctx context.Context, rooms []models.Room) error
}
