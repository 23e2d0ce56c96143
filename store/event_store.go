package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/senku-sen/event-management-system/models"
)

// MongoEventStore is the MongoDB-backed EventStore.
type MongoEventStore struct {
	col *mongo.Collection
}

// NewMongoEventStore uses the "events" collection of db.
func NewMongoEventStore(db *mongo.Database) *MongoEventStore {
	return &MongoEventStore{col: db.Collection("events")}
}

func (s *MongoEventStore) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err := s.col.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *MongoEventStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var event models.Event
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

func (s *MongoEventStore) List(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoEventStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"created_by": ownerID})
}

func (s *MongoEventStore) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

func (s *MongoEventStore) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, fmt.Errorf("count group events: %w", err)
	}
	return n, nil
}

// find runs a filtered query sorted by ascending start date.
func (s *MongoEventStore) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (s *MongoEventStore) Update(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoEventStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
