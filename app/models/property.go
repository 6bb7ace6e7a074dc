package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a managed rental unit
type Property struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Address   string             `bson:"address" json:"address"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Bedrooms  int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Nightly   float64            `bson:"nightly,omitempty" json:"nightly,omitempty"` // nightly rate in USD
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Cleaning is one scheduled turnover cleaning for a property
type Cleaning struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PropertyID  primitive.ObjectID `bson:"property_id" json:"property_id"`
	CleanerName string             `bson:"cleaner_name" json:"cleaner_name"`
	Phone       string             `bson:"phone" json:"phone"` // E.164, target for the SMS reminder
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Status      string             `bson:"status" json:"status"`
	Notified    bool               `bson:"notified" json:"notified"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Cleaning status constants
const (
	CleaningScheduled = "scheduled"
	CleaningDone      = "done"
	CleaningCancelled = "cancelled"
)
