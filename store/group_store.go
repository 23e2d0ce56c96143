package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/senku-sen/event-management-system/models"
)

// MongoGroupStore is the MongoDB-backed GroupStore.
type MongoGroupStore struct {
	col *mongo.Collection
}

// NewMongoGroupStore uses the "groups" collection of db.
func NewMongoGroupStore(db *mongo.Database) *MongoGroupStore {
	return &MongoGroupStore{col: db.Collection("groups")}
}

func (s *MongoGroupStore) Create(ctx context.Context, group *models.Group) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err := s.col.InsertOne(ctx, group)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (s *MongoGroupStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var group models.Group
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &group, nil
}

func (s *MongoGroupStore) List(ctx context.Context, visibilities []string) ([]models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	filter := bson.M{"visibility": bson.M{"$in": visibilities}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cursor.Close(ctx)

	groups := []models.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return groups, nil
}

func (s *MongoGroupStore) Update(ctx context.Context, group *models.Group) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": group.ID}, group)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoGroupStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
