package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Generation records one successful QR generation.
type Generation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID      string             `bson:"client_id" json:"clientId"`
	AccountPrefix string             `bson:"account_prefix" json:"accountPrefix"`
	AccountNumber string             `bson:"account_number" json:"accountNumber"`
	BankCode      string             `bson:"bank_code" json:"bankCode"`
	Amount        string             `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	VS            string             `bson:"vs" json:"vs"`
	SS            string             `bson:"ss" json:"ss"`
	KS            string             `bson:"ks" json:"ks"`
	Message       string             `bson:"message" json:"message"`
	TargetCell    string             `bson:"target_cell" json:"targetCell"`
	Inserted      bool               `bson:"inserted" json:"inserted"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

// NewGeneration builds a history record from a validated request.
func NewGeneration(clientID string, req *QRRequest, inserted bool) *Generation {
	return &Generation{
		ClientID:      clientID,
		AccountPrefix: req.AccountPrefix,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Amount:        req.Amount.StringFixed(2),
		Currency:      req.Currency,
		VS:            req.VariableSymbol,
		SS:            req.SpecificSymbol,
		KS:            req.ConstantSymbol,
		Message:       req.Message,
		TargetCell:    req.TargetCell,
		Inserted:      inserted,
	}
}
