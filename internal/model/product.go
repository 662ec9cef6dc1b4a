package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpiryDate stores an expiry day in two redundant representations: a
// human-readable date string and milliseconds since epoch at local midnight.
type ExpiryDate struct {
	Human string `bson:"human"`
	ISO   int64  `bson:"iso"`
}

// NewExpiryDate builds both representations from a calendar day.
func NewExpiryDate(day time.Time) ExpiryDate {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return ExpiryDate{
		Human: midnight.Format("2006-01-02"),
		ISO:   midnight.UnixMilli(),
	}
}

// Due reports whether the expiry moment is at or before now.
func (e ExpiryDate) Due(now time.Time) bool {
	return e.ISO <= now.UnixMilli()
}

// Product is a perishable item tracked for a single user. Name and Expiry
// are pointers because historical records may lack either field.
type Product struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID int64              `bson:"user_id"`
	Name   *string            `bson:"product_name,omitempty"`
	Expiry *ExpiryDate        `bson:"expiry_date,omitempty"`
}

// DisplayName returns the product name or a placeholder when absent.
func (p *Product) DisplayName() string {
	if p.Name == nil {
		return "unknown product"
	}
	return *p.Name
}

// DisplayExpiry returns the human-readable expiry or a placeholder when absent.
func (p *Product) DisplayExpiry() string {
	if p.Expiry == nil {
		return "date unknown"
	}
	return p.Expiry.Human
}
