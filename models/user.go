package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleDriver   = "driver"
	RoleInvestor = "investor"
)

// User is a marketplace account. PrivyID is set once the account has been
// linked to the external identity provider.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	PrivyID    string             `bson:"privy_id,omitempty" json:"privy_id,omitempty"`
	Role       string             `bson:"role" json:"role"`
	IsVerified bool               `bson:"is_verified" json:"is_verified"`
	KYCStatus  string             `bson:"kyc_status,omitempty" json:"kyc_status,omitempty"`
	CreatedAt  Timestamp          `bson:"created_at" json:"created_at"`
}
