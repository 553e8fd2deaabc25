package models

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// PaymentForm holds the raw taskpane field values of one submission.
type PaymentForm struct {
	AccountPrefix  string `json:"accountPrefix"`
	AccountNumber  string `json:"accountNumber"`
	BankCode       string `json:"bankCode"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	VariableSymbol string `json:"vs"`
	SpecificSymbol string `json:"ss"`
	ConstantSymbol string `json:"ks"`
	Message        string `json:"message"`
	TargetCell     string `json:"targetCell"`
	FitToCell      bool   `json:"fitToCell"`
}

// QRRequest is a validated PaymentForm ready to be sent to a generator.
type QRRequest struct {
	AccountPrefix  string
	AccountNumber  string
	BankCode       string
	Amount         decimal.Decimal
	Currency       string
	VariableSymbol string
	SpecificSymbol string
	ConstantSymbol string
	Message        string
	TargetCell     string
	FitToCell      bool
}

// Query renders the generator query parameters. Empty optional values are
// sent as empty parameters.
func (r *QRRequest) Query() url.Values {
	q := url.Values{}
	q.Set("accountPrefix", r.AccountPrefix)
	q.Set("accountNumber", r.AccountNumber)
	q.Set("bankCode", r.BankCode)
	q.Set("amount", r.Amount.StringFixed(2))
	q.Set("currency", r.Currency)
	q.Set("vs", r.VariableSymbol)
	q.Set("ks", r.ConstantSymbol)
	q.Set("ss", r.SpecificSymbol)
	q.Set("message", r.Message)
	return q
}

// Account returns the account in its usual Czech notation, prefix-number/bank.
func (r *QRRequest) Account() string {
	acc := r.AccountNumber + "/" + r.BankCode
	if r.AccountPrefix != "" {
		acc = r.AccountPrefix + "-" + acc
	}
	return acc
}
