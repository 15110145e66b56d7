// server/internal/store/mongo.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"facility-accounts-api-server/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding account documents.
const CollectionName = "accounts"

// Index names double as the lookup table for duplicate-key errors.
const (
	indexUsername     = "uniq_username"
	indexEmail        = "uniq_email"
	indexFacilityName = "uniq_facility_name"
)

var indexFields = map[string]string{
	indexUsername:     FieldUsername,
	indexEmail:        FieldEmail,
	indexFacilityName: FieldFacilityName,
}

// MongoStore persists accounts in MongoDB. Uniqueness is enforced by the
// unique indexes created in EnsureIndexes, which makes each insert atomic
// with respect to its uniqueness check.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique indexes on username, email and facility name.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_key", Value: 1}},
			Options: options.Index().SetName(indexUsername).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(indexEmail).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "facility_name", Value: 1}},
			Options: options.Index().SetName(indexFacilityName).SetUnique(true),
		},
	}
	if _, err := s.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, account *models.Account) (*models.Account, error) {
	record := *account
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.UsernameKey == "" {
		record.UsernameKey = UsernameKey(record.Username)
	}
	if record.CreatedAt.IsZero() {
		// Mongo keeps millisecond precision; truncate so the returned value matches what is stored.
		record.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &UniquenessError{Field: duplicateField(err)}
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &record, nil
}

func (s *MongoStore) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.findOne(ctx, bson.M{"username_key": UsernameKey(username)})
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var account models.Account
	err := s.coll.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

// duplicateField maps a duplicate-key error to the field whose index rejected it.
func duplicateField(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if field := fieldFromMessage(e.Message); field != "" {
				return field
			}
		}
	}
	if field := fieldFromMessage(err.Error()); field != "" {
		return field
	}
	if strings.Contains(err.Error(), "_id_") {
		return "id"
	}
	return "unknown"
}

func fieldFromMessage(msg string) string {
	for index, field := range indexFields {
		if strings.Contains(msg, index) {
			return field
		}
	}
	return ""
}
