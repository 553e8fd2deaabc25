package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryStore keeps the generations made by each client.
type HistoryStore interface {
	Record(ctx context.Context, g *models.Generation) error
	List(ctx context.Context, clientID string, limit int) ([]models.Generation, error)
}

type HistoryService struct {
	collection *mongo.Collection
}

func NewHistoryService(db *mongo.Database) *HistoryService {
	return &HistoryService{collection: db.Collection("generations")}
}

// EnsureIndexes creates the index used by List.
func (s *HistoryService) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create generations index")
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *HistoryService) Record(ctx context.Context, g *models.Generation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	prepareGeneration(g)
	if _, err := s.collection.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

func (s *HistoryService) List(ctx context.Context, clientID string, limit int) ([]models.Generation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(ClampHistoryLimit(limit)))
	cur, err := s.collection.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch generations: %w", err)
	}
	defer cur.Close(ctx)

	generations := []models.Generation{}
	if err := cur.All(ctx, &generations); err != nil {
		return nil, fmt.Errorf("failed to decode generations: %w", err)
	}
	return generations, nil
}

// ClampHistoryLimit maps non-positive limits to the default and caps the rest.
func ClampHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

func prepareGeneration(g *models.Generation) {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
}
