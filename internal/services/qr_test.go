package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

var cs = services.NewMessages("cs")

func pngImage(t *testing.T) *models.Image {
	return &models.Image{Data: testPNG(t), ContentType: "image/png"}
}

func TestSubmitMissingFieldsSkipsNetwork(t *testing.T) {
	gen := &fakeGenerator{}
	svc := services.NewQRService(gen, nil)

	_, err := svc.Submit(context.Background(), "c1", models.PaymentForm{}, &fakeHost{}, cs)

	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Message, "Pole chybí") {
		t.Fatalf("message = %q", verr.Message)
	}
	if gen.Calls() != 0 {
		t.Fatalf("generator called %d times", gen.Calls())
	}
	if svc.Busy("c1") {
		t.Fatal("guard not released")
	}
}

func TestSubmitInvalidAmount(t *testing.T) {
	gen := &fakeGenerator{}
	form := validForm()
	form.Amount = "-10"

	_, err := services.NewQRService(gen, nil).Submit(context.Background(), "c1", form, nil, cs)

	var verr *services.ValidationError
	if !errors.As(err, &verr) || !strings.Contains(verr.Message, "Neplatná částka") {
		t.Fatalf("err = %v", err)
	}
	if gen.Calls() != 0 {
		t.Fatal("generator called for invalid amount")
	}
}

func TestSubmitInsertsIntoHostOnce(t *testing.T) {
	img := pngImage(t)
	gen := &fakeGenerator{img: img}
	host := &fakeHost{}
	history := services.NewMemoryHistory()
	svc := services.NewQRService(gen, history)

	form := validForm()
	form.FitToCell = true
	res, err := svc.Submit(context.Background(), "c1", form, host, cs)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if gen.Calls() != 1 {
		t.Fatalf("generator called %d times", gen.Calls())
	}
	if host.calls != 1 {
		t.Fatalf("host called %d times, want 1", host.calls)
	}
	if host.cell != "A1" || !host.fit {
		t.Fatalf("host got cell %q fit %v", host.cell, host.fit)
	}
	if host.image != base64.StdEncoding.EncodeToString(img.Data) {
		t.Fatal("host received a different payload")
	}
	if !res.Inserted || !strings.Contains(res.Message, "úspěšně") {
		t.Fatalf("result = %+v", res)
	}
	if svc.Busy("c1") {
		t.Fatal("guard not released")
	}

	records, _ := history.List(context.Background(), "c1", 0)
	if len(records) != 1 || !records[0].Inserted || records[0].Amount != "100.00" {
		t.Fatalf("history = %+v", records)
	}
}

func TestSubmitPreviewWithoutHost(t *testing.T) {
	svc := services.NewQRService(&fakeGenerator{img: pngImage(t)}, nil)

	res, err := svc.Submit(context.Background(), "c1", validForm(), nil, services.NewMessages("en"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Inserted {
		t.Fatal("preview reported as inserted")
	}
	if res.Message != "QR generated (preview)." {
		t.Fatalf("message = %q", res.Message)
	}
	if !strings.HasPrefix(res.DataURL(), "data:image/png;base64,") {
		t.Fatalf("data url = %.40s", res.DataURL())
	}
}

func TestSubmitFetchFailure(t *testing.T) {
	host := &fakeHost{}
	svc := services.NewQRService(&fakeGenerator{err: errors.New("network response was not ok")}, nil)

	_, err := svc.Submit(context.Background(), "c1", validForm(), host, cs)
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
	if want := "Chyba při načítání obrázku: network response was not ok"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
	if host.calls != 0 {
		t.Fatal("host called after failed fetch")
	}
	if svc.Busy("c1") {
		t.Fatal("guard not released")
	}
}

func TestSubmitInsertFailure(t *testing.T) {
	cause := errors.New("sheet protected")
	svc := services.NewQRService(&fakeGenerator{img: pngImage(t)}, nil)

	_, err := svc.Submit(context.Background(), "c1", validForm(), &fakeHost{err: cause}, cs)
	if !errors.Is(err, services.ErrInsert) || !errors.Is(err, cause) {
		t.Fatalf("err = %v", err)
	}
	if svc.Busy("c1") {
		t.Fatal("guard not released")
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	gen := &fakeGenerator{
		img:          pngImage(t),
		blockAccount: "1111111111",
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	svc := services.NewQRService(gen, nil)

	blocked := validForm()
	blocked.AccountNumber = "1111111111"

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.Submit(context.Background(), "c1", blocked, nil, cs); err != nil {
			t.Errorf("first Submit: %v", err)
		}
	}()
	<-gen.started

	if !svc.Busy("c1") {
		t.Fatal("client not marked busy")
	}
	if _, err := svc.Submit(context.Background(), "c1", validForm(), nil, cs); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("second Submit err = %v, want ErrBusy", err)
	}
	if _, err := svc.Submit(context.Background(), "c2", validForm(), nil, cs); err != nil {
		t.Fatalf("other client blocked: %v", err)
	}

	close(gen.release)
	wg.Wait()
	if svc.Busy("c1") {
		t.Fatal("guard not released")
	}
}
