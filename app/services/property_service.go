package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/str-zone/app/models"
)

// ErrNotFound means the requested document does not exist
var ErrNotFound = errors.New("document not found")

// PropertyService persists managed units and their cleaning schedules in
// MongoDB
type PropertyService struct {
	properties *mongo.Collection
	cleanings  *mongo.Collection
	logger     *zap.Logger
}

// NewPropertyService wires the collections and ensures indexes
func NewPropertyService(db *mongo.Database, logger *zap.Logger) (*PropertyService, error) {
	properties := db.Collection("properties")
	cleanings := db.Collection("cleanings")

	propIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{bson.E{Key: "city", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "created_at", Value: 1}},
		},
	}
	cleanIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{bson.E{Key: "property_id", Value: 1}, bson.E{Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "status", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := properties.Indexes().CreateMany(ctx, propIndexes); err != nil {
		logger.Warn("property index creation failed", zap.Error(err))
	}
	if _, err := cleanings.Indexes().CreateMany(ctx, cleanIndexes); err != nil {
		logger.Warn("cleaning index creation failed", zap.Error(err))
	}

	return &PropertyService{
		properties: properties,
		cleanings:  cleanings,
		logger:     logger,
	}, nil
}

// CreateProperty inserts a new managed unit
func (ps *PropertyService) CreateProperty(ctx context.Context, p *models.Property) (*models.Property, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := ps.properties.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("property insert failed: %w", err)
	}

	ps.logger.Info("property created",
		zap.String("id", p.ID.Hex()), zap.String("name", p.Name))
	return p, nil
}

// ListProperties returns all units, newest first
func (ps *PropertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})

	cursor, err := ps.properties.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("property query failed: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Property, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("property decode failed: %w", err)
	}
	return out, nil
}

// GetProperty fetches one unit by hex id
func (ps *PropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Property
	err = ps.properties.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("property query failed: %w", err)
	}
	return &p, nil
}

// DeleteProperty removes a unit and its cleaning schedule
func (ps *PropertyService) DeleteProperty(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := ps.properties.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("property delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	// Orphaned cleanings would still show under a dead property id
	if _, err := ps.cleanings.DeleteMany(ctx, bson.M{"property_id": oid}); err != nil {
		ps.logger.Warn("cleaning cleanup failed", zap.Error(err), zap.String("property_id", id))
	}
	return nil
}

// ScheduleCleaning adds a cleaning for a property. The property must exist.
func (ps *PropertyService) ScheduleCleaning(ctx context.Context, propertyID string, c *models.Cleaning) (*models.Cleaning, error) {
	prop, err := ps.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	c.ID = primitive.NewObjectID()
	c.PropertyID = prop.ID
	c.Status = models.CleaningScheduled
	c.Notified = false
	c.CreatedAt = time.Now().UTC()

	if _, err := ps.cleanings.InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("cleaning insert failed: %w", err)
	}

	ps.logger.Info("cleaning scheduled",
		zap.String("property", prop.Name),
		zap.String("date", c.Date),
		zap.String("cleaner", c.CleanerName))
	return c, nil
}

// ListCleanings returns a property's cleanings, soonest date first
func (ps *PropertyService) ListCleanings(ctx context.Context, propertyID string) ([]models.Cleaning, error) {
	oid, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.Find().SetSort(bson.D{bson.E{Key: "date", Value: 1}})
	cursor, err := ps.cleanings.Find(ctx, bson.M{"property_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("cleaning query failed: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Cleaning, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("cleaning decode failed: %w", err)
	}
	return out, nil
}

// UpdateCleaningStatus moves a cleaning between scheduled/done/cancelled
func (ps *PropertyService) UpdateCleaningStatus(ctx context.Context, cleaningID, status string) error {
	oid, err := primitive.ObjectIDFromHex(cleaningID)
	if err != nil {
		return ErrNotFound
	}

	res, err := ps.cleanings.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("cleaning update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkNotified records that the reminder SMS went out
func (ps *PropertyService) MarkNotified(ctx context.Context, cleaningID string) error {
	oid, err := primitive.ObjectIDFromHex(cleaningID)
	if err != nil {
		return ErrNotFound
	}

	res, err := ps.cleanings.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"notified": true}})
	if err != nil {
		return fmt.Errorf("cleaning update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
