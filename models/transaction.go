package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TransactionTypeDeposit       = "deposit"
	TransactionTypeWalletFunding = "wallet_funding"
	TransactionTypeReturn        = "return"
	TransactionTypePayout        = "payout"
)

// Transaction is a wallet ledger entry written by the payment integration.
// Status is free text; see StatusVocabulary for what counts as successful.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Amount    float64            `bson:"amount" json:"amount"`
	Type      string             `bson:"type" json:"type"`
	Method    string             `bson:"method" json:"method"`
	Status    string             `bson:"status" json:"status"`
	Reference string             `bson:"reference,omitempty" json:"reference,omitempty"`
	CreatedAt Timestamp          `bson:"created_at" json:"created_at"`
}
