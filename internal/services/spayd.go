package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

const (
	DefaultQRSize = 256

	spaydMessageLimit = 60
)

// QRRecoveryLevel is the error recovery level for generated codes. Medium is
// the level recommended for Czech payment QR codes.
var QRRecoveryLevel = qrcode.Medium

// CzechIBAN builds the IBAN of a Czech domestic account.
func CzechIBAN(prefix, number, bankCode string) (string, error) {
	if !isDigits(prefix, 0, 6) || !isDigits(number, 1, 10) || !isDigits(bankCode, 4, 4) {
		return "", fmt.Errorf("invalid czech account %s-%s/%s", prefix, number, bankCode)
	}
	bban := bankCode + leftPad(prefix, 6) + leftPad(number, 10)
	// "CZ00" moved to the end, letters as numbers: C=12 Z=35.
	check := 98 - mod97(bban+"123500")
	return fmt.Sprintf("CZ%02d%s", check, bban), nil
}

func mod97(digits string) int {
	rem := 0
	for _, r := range digits {
		rem = (rem*10 + int(r-'0')) % 97
	}
	return rem
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// SPAYD renders the Short Payment Descriptor carried by Czech payment QR
// codes. Keys are written in alphabetical order after ACC.
func SPAYD(req *models.QRRequest) (string, error) {
	iban, err := CzechIBAN(req.AccountPrefix, req.AccountNumber, req.BankCode)
	if err != nil {
		return "", err
	}
	if !req.Amount.IsPositive() {
		return "", errors.New("spayd amount must be positive")
	}

	parts := []string{"SPD", "1.0", "ACC:" + iban, "AM:" + req.Amount.StringFixed(2)}
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+":"+spaydEscape(value))
		}
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	add("CC", currency)
	add("MSG", truncateRunes(req.Message, spaydMessageLimit))
	add("X-KS", req.ConstantSymbol)
	add("X-SS", req.SpecificSymbol)
	add("X-VS", req.VariableSymbol)
	return strings.Join(parts, "*"), nil
}

func spaydEscape(s string) string {
	return strings.ReplaceAll(s, "*", "%2A")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SPAYDGenerator renders payment QR codes locally without calling out.
type SPAYDGenerator struct {
	size int
}

func NewSPAYDGenerator(size int) *SPAYDGenerator {
	if size <= 0 {
		size = DefaultQRSize
	}
	return &SPAYDGenerator{size: size}
}

func (g *SPAYDGenerator) Generate(ctx context.Context, req *models.QRRequest) (*models.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := SPAYD(req)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(payload, QRRecoveryLevel, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return &models.Image{Data: png, ContentType: "image/png"}, nil
}
