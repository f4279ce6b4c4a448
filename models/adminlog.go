package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminLogCancelled is the audit action written by order cancellation;
// every other action is the order status the admin moved the order to.
const AdminLogCancelled = "cancelled"

// AdminLog is one append-only audit entry per state-changing admin
// action on an order. Entries are never updated or deleted.
type AdminLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Admin       primitive.ObjectID `bson:"admin" json:"admin"`
	Action      string             `bson:"action" json:"action"`
	TargetOrder primitive.ObjectID `bson:"targetOrder" json:"targetOrder"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
