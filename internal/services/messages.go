package services

import (
	"fmt"
	"strings"
)

// Message keys.
const (
	MsgMissingFields = "missing_fields"
	MsgInvalidAmount = "invalid_amount"
	MsgInvalidFields = "invalid_fields"
	MsgFetchError    = "fetch_error"
	MsgInsertError   = "insert_error"
	MsgInserted      = "inserted"
	MsgPreview       = "preview"
	MsgBusy          = "busy"
	MsgGenerating    = "generating"
)

// Field keys, shared by validation errors and label lookup.
const (
	FieldAccountPrefix  = "accountPrefix"
	FieldAccountNumber  = "accountNumber"
	FieldBankCode       = "bankCode"
	FieldAmount         = "amount"
	FieldVariableSymbol = "vs"
	FieldSpecificSymbol = "ss"
	FieldConstantSymbol = "ks"
	FieldTargetCell     = "targetCell"
)

// Taskpane labels without a validated field behind them.
const (
	LabelTitle        = "title"
	LabelCurrency     = "currency"
	LabelMessage      = "message"
	LabelFitToCell    = "fitToCell"
	LabelWorkbook     = "workbook"
	LabelSubmit       = "submit"
	LabelWelcomeTitle = "welcome_title"
	LabelWelcomeBody  = "welcome_body"
	LabelWelcomeStart = "welcome_start"
)

const DefaultLocale = "cs"

var catalog = map[string]map[string]string{
	"cs": {
		MsgMissingFields: "Pole chybí: %s",
		MsgInvalidAmount: "Neplatná částka: zadejte kladné číslo nejvýše 9 999 999,99.",
		MsgInvalidFields: "Neplatná hodnota pole: %s",
		MsgFetchError:    "Chyba při načítání obrázku: %s",
		MsgInsertError:   "Chyba při vkládání obrázku: %s",
		MsgInserted:      "QR kód byl vygenerován a úspěšně vložen.",
		MsgPreview:       "QR kód vygenerován (náhled).",
		MsgBusy:          "Generování již probíhá.",
		MsgGenerating:    "Generuji…",

		FieldAccountPrefix:  "Předčíslí",
		FieldAccountNumber:  "Číslo účtu",
		FieldBankCode:       "Kód banky",
		FieldAmount:         "Částka",
		FieldVariableSymbol: "Variabilní symbol",
		FieldSpecificSymbol: "Specifický symbol",
		FieldConstantSymbol: "Konstantní symbol",
		FieldTargetCell:     "Cíl QR",

		LabelTitle:        "Platební QR kód",
		LabelCurrency:     "Měna",
		LabelMessage:      "Zpráva pro příjemce",
		LabelFitToCell:    "Přizpůsobit velikost buňce",
		LabelWorkbook:     "Sešit (.xlsx), volitelné",
		LabelSubmit:       "Generovat QR",
		LabelWelcomeTitle: "Vítejte",
		LabelWelcomeBody:  "Vyplňte platební údaje a cílovou buňku. Bez nahraného sešitu se zobrazí jen náhled QR kódu.",
		LabelWelcomeStart: "Začít",
	},
	"en": {
		MsgMissingFields: "Missing fields: %s",
		MsgInvalidAmount: "Invalid amount: enter a positive number up to 9,999,999.99.",
		MsgInvalidFields: "Invalid field value: %s",
		MsgFetchError:    "Error fetching image: %s",
		MsgInsertError:   "Error inserting image: %s",
		MsgInserted:      "QR image generated and inserted successfully.",
		MsgPreview:       "QR generated (preview).",
		MsgBusy:          "A QR code is already being generated.",
		MsgGenerating:    "Generating…",

		FieldAccountPrefix:  "Account prefix",
		FieldAccountNumber:  "Account number",
		FieldBankCode:       "Bank code",
		FieldAmount:         "Amount",
		FieldVariableSymbol: "Variable symbol",
		FieldSpecificSymbol: "Specific symbol",
		FieldConstantSymbol: "Constant symbol",
		FieldTargetCell:     "QR target cell",

		LabelTitle:        "Payment QR code",
		LabelCurrency:     "Currency",
		LabelMessage:      "Message for recipient",
		LabelFitToCell:    "Fit to cell",
		LabelWorkbook:     "Workbook (.xlsx), optional",
		LabelSubmit:       "Generate QR",
		LabelWelcomeTitle: "Welcome",
		LabelWelcomeBody:  "Fill in the payment details and the target cell. Without an uploaded workbook only a preview is shown.",
		LabelWelcomeStart: "Get started",
	},
}

// Messages resolves user facing texts for one locale, falling back to the
// default locale and finally to the key itself.
type Messages struct {
	locale string
}

func NewMessages(locale string) Messages {
	if _, ok := catalog[locale]; !ok {
		locale = DefaultLocale
	}
	return Messages{locale: locale}
}

func (m Messages) Locale() string {
	return m.locale
}

func (m Messages) Text(key string, args ...any) string {
	format, ok := catalog[m.locale][key]
	if !ok {
		if format, ok = catalog[DefaultLocale][key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Labels joins the localized labels of the given field keys.
func (m Messages) Labels(fields []string) string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		labels = append(labels, m.Text(f))
	}
	return strings.Join(labels, ", ")
}

// MatchLocale picks the first supported language from an Accept-Language
// header, or fallback when none is supported.
func MatchLocale(acceptLanguage, fallback string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		lang := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if _, ok := catalog[lang]; ok {
			return lang
		}
	}
	return fallback
}
