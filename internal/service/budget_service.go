package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tripwise/internal/budgetexport"
	"tripwise/internal/domain"
	"tripwise/internal/extract"
	"tripwise/internal/logger"
	"tripwise/internal/port"
	"tripwise/internal/prompt"
)

const (
	budgetTemperature = 0.3
	budgetMaxTokens   = 2000

	defaultCurrency = "USD"
)

// TemplateData is the trip context sent by the client.
type TemplateData struct {
	TemplateID string   `json:"templateId"`
	Topic      string   `json:"topic"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Users      []string `json:"users"`
}

// BudgetPreferences tunes the estimate. Every field is optional.
type BudgetPreferences struct {
	BudgetLevel string `json:"budgetLevel"`
	HomeCountry string `json:"homeCountry"`
	Currency    string `json:"currency"`
}

// EstimateBudgetInput is the DTO for a budget estimation request.
type EstimateBudgetInput struct {
	CallerID     string
	TemplateData *TemplateData
	Preferences  *BudgetPreferences
}

// ExportFile is a rendered estimate ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BudgetService estimates, reads and exports trip budgets.
type BudgetService interface {
	EstimateBudget(ctx context.Context, input *EstimateBudgetInput) (*domain.BudgetEstimate, error)
	GetEstimate(ctx context.Context, callerID, templateID string) (*domain.BudgetEstimate, error)
	ExportEstimate(ctx context.Context, callerID, templateID string, format budgetexport.Format) (*ExportFile, error)
}

type budgetService struct {
	templates port.TripTemplateRepository
	estimates port.BudgetEstimateRepository
	model     port.LanguageModel
	archive   port.ExtractionArchive
	publisher port.EventPublisher
	now       func() time.Time
}

// NewBudgetService creates a new BudgetService implementation.
func NewBudgetService(
	templates port.TripTemplateRepository,
	estimates port.BudgetEstimateRepository,
	model port.LanguageModel,
	archive port.ExtractionArchive,
	publisher port.EventPublisher,
) BudgetService {
	return &budgetService{
		templates: templates,
		estimates: estimates,
		model:     model,
		archive:   archive,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// TemplateTopic returns the realtime topic for a trip template.
func TemplateTopic(templateID string) string {
	return "template:" + templateID
}

func (s *budgetService) EstimateBudget(ctx context.Context, input *EstimateBudgetInput) (*domain.BudgetEstimate, error) {
	l := logger.For(ctx, "budget")

	if input.CallerID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "the function must be called while authenticated", nil)
	}
	td := input.TemplateData
	if td == nil || strings.TrimSpace(td.TemplateID) == "" {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "templateData with templateId is required", nil)
	}

	promptInput, err := buildBudgetInput(ctx, td, input.Preferences)
	if err != nil {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, err.Error(), err)
	}

	if _, err := s.authorizeTemplate(ctx, input.CallerID, td.TemplateID); err != nil {
		return nil, err
	}

	p := prompt.BuildBudgetPrompt(promptInput)
	completion, err := s.model.Complete(ctx, port.CompletionRequest{
		Prompt:      p,
		Temperature: budgetTemperature,
		MaxTokens:   budgetMaxTokens,
	})
	if err != nil {
		l.Error().Err(err).Str("template_id", td.TemplateID).Msg("model call failed")
		return nil, domain.NewCallError(domain.CodeInternal, "failed to estimate budget", err)
	}

	rec, err := extract.JSON(completion.Text)
	if err == nil {
		err = extract.ValidateRequired(rec, extract.BudgetRequiredFields)
	}
	storeTranscript(ctx, s.archive, &port.ExtractionRecord{
		Kind:        "budget",
		CallerID:    input.CallerID,
		Model:       completion.Model,
		Prompt:      p,
		RawResponse: completion.Text,
	}, err)
	if err != nil {
		l.Error().Err(err).Str("template_id", td.TemplateID).Msg("budget extraction failed")
		return nil, domain.NewCallError(domain.CodeInternal, "failed to estimate budget", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, domain.NewCallError(domain.CodeInternal, "failed to estimate budget", err)
	}
	est := &domain.BudgetEstimate{
		TemplateID:  td.TemplateID,
		Record:      raw,
		Model:       completion.Model,
		EstimatedBy: input.CallerID,
		EstimatedAt: s.now(),
	}
	if err := s.estimates.Upsert(ctx, est); err != nil {
		l.Error().Err(err).Str("template_id", td.TemplateID).Msg("failed to save budget estimate")
		return nil, domain.NewCallError(domain.CodeInternal, "failed to save budget estimate", err)
	}

	s.publisher.Publish(TemplateTopic(td.TemplateID), domain.Event{
		Type: domain.EventBudgetEstimated,
		Data: est,
		At:   est.EstimatedAt,
	})
	l.Info().Str("template_id", td.TemplateID).Str("model", est.Model).Msg("budget estimated")
	return est, nil
}

func (s *budgetService) GetEstimate(ctx context.Context, callerID, templateID string) (*domain.BudgetEstimate, error) {
	if callerID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}
	if _, err := s.authorizeTemplate(ctx, callerID, templateID); err != nil {
		return nil, err
	}
	est, err := s.estimates.GetByTemplateID(ctx, templateID)
	if err != nil {
		return nil, toCallError(ctx, err, "failed to load budget estimate")
	}
	return est, nil
}

func (s *budgetService) ExportEstimate(ctx context.Context, callerID, templateID string, format budgetexport.Format) (*ExportFile, error) {
	if callerID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}
	tpl, err := s.authorizeTemplate(ctx, callerID, templateID)
	if err != nil {
		return nil, err
	}
	est, err := s.estimates.GetByTemplateID(ctx, templateID)
	if err != nil {
		return nil, toCallError(ctx, err, "failed to load budget estimate")
	}
	rec, err := budgetexport.Decode(est)
	if err != nil {
		return nil, toCallError(ctx, err, "stored budget estimate is not exportable")
	}

	var buf bytes.Buffer
	switch format {
	case budgetexport.FormatCSV:
		err = budgetexport.WriteCSV(&buf, rec)
	default:
		format = budgetexport.FormatXLSX
		err = budgetexport.WriteXLSX(&buf, est, rec)
	}
	if err != nil {
		return nil, toCallError(ctx, err, "failed to export budget estimate")
	}

	return &ExportFile{
		Filename:    budgetexport.BuildFilename(tpl.Topic, format, s.now()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// authorizeTemplate loads the stored template and checks the caller is one of its users.
func (s *budgetService) authorizeTemplate(ctx context.Context, callerID, templateID string) (*domain.TripTemplate, error) {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, toCallError(ctx, err, "failed to load trip template")
	}
	if !tpl.HasUser(callerID) {
		return nil, domain.NewCallError(domain.CodePermissionDenied, "you are not a member of this trip", domain.ErrNotTemplateUser)
	}
	return tpl, nil
}

func buildBudgetInput(ctx context.Context, td *TemplateData, prefs *BudgetPreferences) (prompt.BudgetInput, error) {
	l := logger.For(ctx, "budget")

	// Unusable dates leave the trip length to the model.
	dates, days, err := prompt.TripDates(td.StartDate, td.EndDate)
	if err != nil {
		l.Warn().Err(err).Str("template_id", td.TemplateID).Msg("trip dates not usable, estimating without a date list")
	} else if days > len(dates) {
		l.Info().Int("days", days).Int("listed", len(dates)).Msg("daily breakdown capped")
	}

	level := domain.BudgetLevelModerate
	currency := defaultCurrency
	home := ""
	if prefs != nil {
		if prefs.BudgetLevel != "" {
			level = domain.BudgetLevel(strings.ToLower(strings.TrimSpace(prefs.BudgetLevel)))
			if !domain.ValidBudgetLevels[level] {
				return prompt.BudgetInput{}, errors.New("budgetLevel must be budget, moderate or luxury")
			}
		}
		if c := strings.ToUpper(strings.TrimSpace(prefs.Currency)); c != "" {
			if len(c) != 3 {
				return prompt.BudgetInput{}, errors.New("currency must be a 3-letter ISO 4217 code")
			}
			currency = c
		}
		home = strings.TrimSpace(prefs.HomeCountry)
	}

	travellers := len(td.Users)
	if travellers == 0 {
		travellers = 1
	}
	return prompt.BudgetInput{
		Topic:       strings.TrimSpace(td.Topic),
		StartDate:   strings.TrimSpace(td.StartDate),
		EndDate:     strings.TrimSpace(td.EndDate),
		Days:        days,
		Dates:       dates,
		Travellers:  travellers,
		BudgetLevel: string(level),
		HomeCountry: home,
		Currency:    currency,
	}, nil
}
