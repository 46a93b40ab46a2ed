package services

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

// MongoCardService is the production CardStore backed by MongoDB. Cards are
// keyed by their opaque id; timestamps come from the server clock.
type MongoCardService struct {
	client   *mongo.Client
	db       *mongo.Database
	cardsCol *mongo.Collection
}

func NewMongoCardService(ctx context.Context, mongoURI, dbName string) (*MongoCardService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("cards")

	// Best-effort index for owner listings.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return &MongoCardService{
		client:   client,
		db:       db,
		cardsCol: col,
	}, nil
}

func (s *MongoCardService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoCardService) Create(ctx context.Context, cardID string, profile models.Profile, ownerID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}

	now := time.Now().UTC()
	card := models.Card{
		CardID:    cardID,
		OwnerID:   ownerID,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.cardsCol.InsertOne(ctx, card); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCardExists
		}
		return err
	}
	return nil
}

// Update reads the current document first and refuses to write when it
// belongs to a different owner. The read and the write are not one atomic
// step; two genuinely different owners racing on the same id could interleave.
// Given how ids are generated that collision is accepted, not guarded.
func (s *MongoCardService) Update(ctx context.Context, cardID string, profile models.Profile, ownerID string) error {
	var existing models.Card
	err := s.cardsCol.FindOne(ctx, bson.M{"_id": cardID}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCardNotFound
		}
		return err
	}
	if existing.OwnerID != "" && existing.OwnerID != ownerID {
		return ErrUnauthorized
	}

	now := time.Now().UTC()
	_, err = s.cardsCol.UpdateOne(ctx, bson.M{"_id": cardID}, bson.M{
		"$set": bson.M{
			"profile":    profile,
			"owner_id":   ownerID,
			"updated_at": now,
		},
	})
	return err
}

func (s *MongoCardService) Load(ctx context.Context, cardID string) (*models.Card, error) {
	var card models.Card
	if err := s.cardsCol.FindOne(ctx, bson.M{"_id": cardID}).Decode(&card); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (s *MongoCardService) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.cardsCol.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cards := []models.Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
