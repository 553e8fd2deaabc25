package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

// PreferencesStore keeps per-client taskpane state such as the first-run flag.
type PreferencesStore interface {
	Get(ctx context.Context, clientID string) (*models.Preferences, error)
	CompleteFirstRun(ctx context.Context, clientID string) (*models.Preferences, error)
}

type PreferencesService struct {
	collection *mongo.Collection
}

func NewPreferencesService(db *mongo.Database) *PreferencesService {
	return &PreferencesService{collection: db.Collection("preferences")}
}

func (s *PreferencesService) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"client_id": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get returns the stored preferences; unknown clients get zero preferences.
func (s *PreferencesService) Get(ctx context.Context, clientID string) (*models.Preferences, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prefs models.Preferences
	err := s.collection.FindOne(ctx, bson.M{"client_id": clientID}).Decode(&prefs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Preferences{ClientID: clientID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	return &prefs, nil
}

func (s *PreferencesService) CompleteFirstRun(ctx context.Context, clientID string) (*models.Preferences, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	prefs := &models.Preferences{ClientID: clientID, FirstRunCompleted: true, UpdatedAt: time.Now().UTC()}
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"client_id": clientID},
		bson.M{"$set": bson.M{"first_run_completed": true, "updated_at": prefs.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}
