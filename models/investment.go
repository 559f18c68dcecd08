package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PoolInvestment is a share purchase in an investment pool. ShareBps is the
// ownership share in basis points.
type PoolInvestment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	PoolID    primitive.ObjectID `bson:"pool_id" json:"pool_id"`
	Amount    float64            `bson:"amount" json:"amount"`
	ShareBps  int64              `bson:"share_bps" json:"share_bps"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt Timestamp          `bson:"created_at" json:"created_at"`
}

// LegacyInvestment is a direct vehicle investment from before pools existed.
type LegacyInvestment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvestorID primitive.ObjectID `bson:"investor_id" json:"investor_id"`
	VehicleID  primitive.ObjectID `bson:"vehicle_id" json:"vehicle_id"`
	Amount     float64            `bson:"amount" json:"amount"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  Timestamp          `bson:"created_at" json:"created_at"`
}
