package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one confirmed payment, stored in the payments collection.
// Records are append-only: nothing in the service updates or deletes them.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"userId" json:"userId"`
	Amount        float64            `bson:"amount" json:"amount"`
	CardLast4     string             `bson:"cardLast4" json:"cardLast4"`
	CardHolder    string             `bson:"cardHolder" json:"cardHolder"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status" json:"status"`
	RecipientCard string             `bson:"recipientCard" json:"recipientCard"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	StatusCompleted = "completed"

	DefaultCardLast4  = "XXXX"
	DefaultCardHolder = "Unknown"
)
