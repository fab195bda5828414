package roomRepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"roombook/database"
	"roombook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRoomRepo is the MongoDB-backed room directory.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo returns a room repository backed by the "rooms" collection.
func NewMongoRoomRepo() *MongoRoomRepo {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("rooms")
	return &MongoRoomRepo{coll: coll}
}

func (repo *MongoRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing rooms: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var rooms []models.Room
	if err := cursor.All(ctxWithTimeout, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (repo *MongoRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching room %s: %w", id, err)
	}
	return &room, nil
}

func (repo *MongoRoomRepo) FindByName(ctx context.Context, name string) (*models.Room, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Case-insensitive exact match on the room name.
	filter := bson.M{"name": bson.M{"$regex": "^" + escapeRegex(name) + "$", "$options": "i"}}
	var room models.Room
	err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching room %q: %w", name, err)
	}
	return &room, nil
}

// Seed inserts the given rooms if the collection is empty.
func (repo *MongoRoomRepo) Seed(ctx context.Context, rooms []models.Room) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctxWithTimeout, bson.M{})
	if err != nil {
		return fmt.Errorf("error counting rooms: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(rooms))
	for _, r := range rooms {
		docs = append(docs, r)
	}
	if _, err := repo.coll.InsertMany(ctxWithTimeout, docs); err != nil {
		return fmt.Errorf("error seeding rooms: %w", err)
	}
	return nil
}

// escapeRegex quotes regex metacharacters in a room name.
func escapeRegex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`, `.`, `\.`, `+`, `\+`, `*`, `\*`, `?`, `\?`,
		`(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
		`^`, `\^`, `$`, `\$`, `|`, `\|`,
	)
	return replacer.Replace(s)
}
