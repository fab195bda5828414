package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"roombook/database"
	"roombook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo persists bookings in the "bookings" collection.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

func NewMongoScheduleRepo() *MongoScheduleRepo {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("bookings")
	return &MongoScheduleRepo{coll: coll}
}

func (repo *MongoScheduleRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoScheduleRepo) Delete(ctx context.Context, bookingID string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": bookingID})
	if err != nil {
		return false, fmt.Errorf("error deleting booking %s: %w", bookingID, err)
	}
	return res.DeletedCount > 0, nil
}

func (repo *MongoScheduleRepo) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoScheduleRepo) ListForRoomDate(ctx context.Context, roomID, date string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"room_id": roomID, "date": date})
}

func (repo *MongoScheduleRepo) List(ctx context.Context, filter Filter) ([]models.Booking, error) {
	query := bson.M{}
	if filter.RoomID != "" {
		query["room_id"] = filter.RoomID
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	return repo.list(ctx, query)
}

func (repo *MongoScheduleRepo) list(ctx context.Context, query bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
