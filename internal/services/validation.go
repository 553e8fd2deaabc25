package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

const (
	defaultCurrency = "CZK"

	// maxAmountLength bounds the raw amount text before it is parsed.
	maxAmountLength = 32
)

// maxAmount is the largest amount that fits the ten character SPAYD AM field.
var maxAmount = decimal.RequireFromString("9999999.99")

var messagePolicy = bluemonday.StrictPolicy()

// ValidationError reports form fields that are missing or malformed. Message
// is already localized.
type ValidationError struct {
	Missing []string
	Invalid []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fields returns every offending field key, missing ones first.
func (e *ValidationError) Fields() []string {
	return append(append([]string{}, e.Missing...), e.Invalid...)
}

// Validate checks a submitted form and converts it into a QRRequest.
func Validate(form models.PaymentForm, msgs Messages) (*models.QRRequest, error) {
	req := &models.QRRequest{
		AccountPrefix:  strings.TrimSpace(form.AccountPrefix),
		AccountNumber:  strings.TrimSpace(form.AccountNumber),
		BankCode:       strings.TrimSpace(form.BankCode),
		Currency:       strings.ToUpper(strings.TrimSpace(form.Currency)),
		VariableSymbol: strings.TrimSpace(form.VariableSymbol),
		SpecificSymbol: strings.TrimSpace(form.SpecificSymbol),
		ConstantSymbol: strings.TrimSpace(form.ConstantSymbol),
		Message:        sanitizeMessage(form.Message),
		TargetCell:     normalizeCell(form.TargetCell),
		FitToCell:      form.FitToCell,
	}
	amount := strings.TrimSpace(form.Amount)

	var missing []string
	if req.AccountNumber == "" {
		missing = append(missing, FieldAccountNumber)
	}
	if req.BankCode == "" {
		missing = append(missing, FieldBankCode)
	}
	if amount == "" {
		missing = append(missing, FieldAmount)
	}
	if req.TargetCell == "" {
		missing = append(missing, FieldTargetCell)
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Missing: missing,
			Message: msgs.Text(MsgMissingFields, msgs.Labels(missing)),
		}
	}

	value, err := parseAmount(amount)
	if err != nil || !value.IsPositive() || value.GreaterThan(maxAmount) {
		return nil, &ValidationError{
			Invalid: []string{FieldAmount},
			Message: msgs.Text(MsgInvalidAmount),
		}
	}
	req.Amount = value

	var invalid []string
	if !isDigits(req.AccountPrefix, 0, 6) {
		invalid = append(invalid, FieldAccountPrefix)
	}
	if !isDigits(req.AccountNumber, 1, 10) {
		invalid = append(invalid, FieldAccountNumber)
	}
	if !isDigits(req.BankCode, 4, 4) {
		invalid = append(invalid, FieldBankCode)
	}
	if !isDigits(req.VariableSymbol, 0, 10) {
		invalid = append(invalid, FieldVariableSymbol)
	}
	if !isDigits(req.SpecificSymbol, 0, 10) {
		invalid = append(invalid, FieldSpecificSymbol)
	}
	if !isDigits(req.ConstantSymbol, 0, 10) {
		invalid = append(invalid, FieldConstantSymbol)
	}
	if _, _, err := excelize.CellNameToCoordinates(req.TargetCell); err != nil {
		invalid = append(invalid, FieldTargetCell)
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{
			Invalid: invalid,
			Message: msgs.Text(MsgInvalidFields, msgs.Labels(invalid)),
		}
	}

	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	return req, nil
}

// parseAmount accepts both the Czech decimal comma and a dot, plus spaces
// used as thousands separators. Exponent notation is rejected. The result is
// rounded to whole hellers, the precision sent to the generator.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ",", ".")
	if len(s) > maxAmountLength || strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return value.Round(2), nil
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeCell(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "$", ""))
}

// sanitizeMessage strips markup from the payment message. Tag-like text such
// as "<Jan>" is dropped along with real tags.
func sanitizeMessage(s string) string {
	return strings.TrimSpace(html.UnescapeString(messagePolicy.Sanitize(s)))
}
