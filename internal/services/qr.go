package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

// Result is the outcome of a successful submission.
type Result struct {
	Message  string
	Request  *models.QRRequest
	Image    *models.Image
	Base64   string
	Inserted bool
}

// DataURL is the preview form of the generated image.
func (r *Result) DataURL() string {
	return r.Image.DataURL()
}

type QRService struct {
	generator ImageGenerator
	history   HistoryStore
	guard     *inflight
}

func NewQRService(generator ImageGenerator, history HistoryStore) *QRService {
	return &QRService{
		generator: generator,
		history:   history,
		guard:     newInflight(),
	}
}

// Busy reports whether clientID has a submission in flight.
func (s *QRService) Busy(clientID string) bool {
	return s.guard.busy(clientID)
}

// Submit validates the form, generates the QR image and places it into host.
// A nil host yields a preview result. Each client may have one submission in
// flight; the slot is released on every return path.
func (s *QRService) Submit(ctx context.Context, clientID string, form models.PaymentForm, host ImageHost, msgs Messages) (*Result, error) {
	if !s.guard.acquire(clientID) {
		return nil, &SubmitError{Op: ErrBusy, Message: msgs.Text(MsgBusy)}
	}
	defer s.guard.release(clientID)

	req, err := Validate(form, msgs)
	if err != nil {
		log.Debug().Err(err).Str("client", clientID).Msg("qr form rejected")
		return nil, err
	}

	start := time.Now()
	img, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("client", clientID).Str("account", req.Account()).Msg("error fetching image")
		return nil, &SubmitError{Op: ErrFetch, Message: msgs.Text(MsgFetchError, err.Error()), Err: err}
	}
	log.Debug().Dur("took", time.Since(start)).Int("bytes", len(img.Data)).Msg("qr image generated")

	result := &Result{Request: req, Image: img, Base64: img.Base64()}
	if host != nil {
		if err := host.InsertImage(ctx, req.TargetCell, result.Base64, req.FitToCell); err != nil {
			log.Error().Err(err).Str("client", clientID).Str("cell", req.TargetCell).Msg("error inserting image")
			return nil, &SubmitError{Op: ErrInsert, Message: msgs.Text(MsgInsertError, err.Error()), Err: err}
		}
		result.Inserted = true
		result.Message = msgs.Text(MsgInserted)
		log.Info().Str("client", clientID).Str("cell", req.TargetCell).Msg("image inserted successfully")
	} else {
		result.Message = msgs.Text(MsgPreview)
	}

	if s.history != nil {
		if err := s.history.Record(ctx, models.NewGeneration(clientID, req, result.Inserted)); err != nil {
			log.Warn().Err(err).Str("client", clientID).Msg("failed to record generation")
		}
	}
	return result, nil
}
