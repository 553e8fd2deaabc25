package services_test

import (
	"testing"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

func TestMessagesFallback(t *testing.T) {
	if got := services.NewMessages("de").Locale(); got != "cs" {
		t.Fatalf("unsupported locale resolved to %q", got)
	}
	if got := services.NewMessages("en").Text("no_such_key"); got != "no_such_key" {
		t.Fatalf("unknown key = %q", got)
	}
	if got := services.NewMessages("en").Text(services.MsgFetchError, "boom"); got != "Error fetching image: boom" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestMatchLocale(t *testing.T) {
	cases := map[string]string{
		"":                "cs",
		"en-US,en;q=0.9":  "en",
		"de-DE, cs;q=0.8": "cs",
		"fr":              "cs",
		"CS-cz,en;q=0.5":  "cs",
	}
	for header, want := range cases {
		if got := services.MatchLocale(header, "cs"); got != want {
			t.Errorf("MatchLocale(%q) = %q, want %q", header, got, want)
		}
	}
}
