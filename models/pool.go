package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PoolStatusOpen   = "open"
	PoolStatusFunded = "funded"
	PoolStatusClosed = "closed"
)

type InvestmentPool struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetType     string             `bson:"asset_type" json:"asset_type"`
	Status        string             `bson:"status" json:"status"`
	RaisedAmount  float64            `bson:"raised_amount" json:"raised_amount"`
	TargetAmount  float64            `bson:"target_amount" json:"target_amount"`
	InvestorCount int64              `bson:"investor_count" json:"investor_count"`
	CreatedAt     Timestamp          `bson:"created_at" json:"created_at"`
}

type Vehicle struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Type string             `bson:"type" json:"type"`
}
