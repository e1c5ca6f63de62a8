package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/extract"
	"tripwise/internal/logger"
	"tripwise/internal/port"
	"tripwise/internal/prompt"
)

// Sampling limits per pipeline.
const (
	receiptTemperature = 0.2
	receiptMaxTokens   = 1000
)

// ReceiptService turns a receipt photo into a structured receipt.
type ReceiptService interface {
	ParseReceipt(ctx context.Context, callerID, base64Image string) (*domain.Receipt, error)
}

type receiptService struct {
	detector port.TextDetector
	model    port.LanguageModel
	archive  port.ExtractionArchive
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(detector port.TextDetector, model port.LanguageModel, archive port.ExtractionArchive) ReceiptService {
	return &receiptService{detector: detector, model: model, archive: archive}
}

func (s *receiptService) ParseReceipt(ctx context.Context, callerID, base64Image string) (*domain.Receipt, error) {
	l := logger.For(ctx, "receipt")

	if callerID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "the function must be called while authenticated", nil)
	}
	if strings.TrimSpace(base64Image) == "" {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "base64Image is required", nil)
	}

	image, err := decodeImage(base64Image)
	if err != nil {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "base64Image is not valid base64", err)
	}

	raw, err := s.detector.DetectText(ctx, image)
	if err != nil {
		l.Error().Err(err).Msg("text detection failed")
		return nil, domain.NewCallError(domain.CodeInternal, "failed to read text from the receipt image", err)
	}

	text, err := extract.Normalize(raw)
	if err != nil {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "no text found in the receipt image", err)
	}
	l.Debug().Int("ocr_chars", len(text)).Msg("receipt text detected")

	p := prompt.BuildReceiptPrompt(text)
	completion, err := s.model.Complete(ctx, port.CompletionRequest{
		Prompt:      p,
		Temperature: receiptTemperature,
		MaxTokens:   receiptMaxTokens,
	})
	if err != nil {
		l.Error().Err(err).Msg("model call failed")
		return nil, domain.NewCallError(domain.CodeInternal, "failed to parse receipt", err)
	}

	receipt, err := receiptFromResponse(completion.Text)
	storeTranscript(ctx, s.archive, &port.ExtractionRecord{
		Kind:        "receipt",
		CallerID:    callerID,
		Model:       completion.Model,
		Prompt:      p,
		RawResponse: completion.Text,
	}, err)
	if err != nil {
		l.Error().Err(err).Str("model", completion.Model).Msg("receipt extraction failed")
		return nil, domain.NewCallError(domain.CodeInternal, "failed to parse receipt", err)
	}

	if !extract.ValidCategory(receipt.Category) {
		l.Warn().Str("category", receipt.Category).Msg("model returned a category outside the allowed set")
	}
	if receipt.Items == nil {
		receipt.Items = []domain.ReceiptItem{}
	}
	return receipt, nil
}

func receiptFromResponse(resp string) (*domain.Receipt, error) {
	rec, err := extract.JSON(resp)
	if err != nil {
		return nil, err
	}
	if err := extract.ValidateRequired(rec, extract.ReceiptRequiredFields); err != nil {
		return nil, err
	}
	var receipt domain.Receipt
	if err := extract.Decode(rec, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// decodeImage accepts bare base64 or a data URI.
func decodeImage(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errors.New("empty image")
	}
	return b, nil
}

// storeTranscript archives a model exchange. Failures are logged and never
// affect the caller.
func storeTranscript(ctx context.Context, archive port.ExtractionArchive, rec *port.ExtractionRecord, extractErr error) {
	rec.RequestID = logger.RequestID(ctx)
	if rec.RequestID == "" {
		rec.RequestID = uuid.New().String()
	}
	rec.CreatedAt = time.Now().UTC()
	if extractErr != nil {
		rec.Error = extractErr.Error()
	}
	if err := archive.Store(ctx, rec); err != nil {
		logger.For(ctx, "archive").Warn().Err(err).Str("kind", rec.Kind).Msg("failed to archive extraction")
	}
}
