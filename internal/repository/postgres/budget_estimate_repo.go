package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tripwise/internal/domain"
	"tripwise/internal/port"
)

// estimateRow scans the JSONB record as bytes regardless of driver representation.
type estimateRow struct {
	TemplateID  string    `db:"template_id"`
	Record      []byte    `db:"record"`
	Model       string    `db:"model"`
	EstimatedBy string    `db:"estimated_by"`
	EstimatedAt time.Time `db:"estimated_at"`
}

type budgetEstimateRepo struct {
	db *sqlx.DB
}

// NewBudgetEstimateRepo creates a new PostgreSQL-backed BudgetEstimateRepository.
func NewBudgetEstimateRepo(db *sqlx.DB) port.BudgetEstimateRepository {
	return &budgetEstimateRepo{db: db}
}

// Upsert replaces any previous estimate for the template.
func (r *budgetEstimateRepo) Upsert(ctx context.Context, est *domain.BudgetEstimate) error {
	query := `INSERT INTO budget_estimates (template_id, record, model, estimated_by, estimated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (template_id) DO UPDATE SET
			record = EXCLUDED.record,
			model = EXCLUDED.model,
			estimated_by = EXCLUDED.estimated_by,
			estimated_at = EXCLUDED.estimated_at`

	_, err := r.db.ExecContext(ctx, query,
		est.TemplateID, []byte(est.Record), est.Model, est.EstimatedBy, est.EstimatedAt)
	if err != nil {
		return fmt.Errorf("budgetEstimateRepo.Upsert: %w", err)
	}
	return nil
}

func (r *budgetEstimateRepo) GetByTemplateID(ctx context.Context, templateID string) (*domain.BudgetEstimate, error) {
	var row estimateRow
	err := r.db.GetContext(ctx, &row,
		`SELECT template_id, record, model, estimated_by, estimated_at
		 FROM budget_estimates WHERE template_id = $1`, templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEstimateNotFound
		}
		return nil, fmt.Errorf("budgetEstimateRepo.GetByTemplateID: %w", err)
	}
	return &domain.BudgetEstimate{
		TemplateID:  row.TemplateID,
		Record:      json.RawMessage(row.Record),
		Model:       row.Model,
		EstimatedBy: row.EstimatedBy,
		EstimatedAt: row.EstimatedAt,
	}, nil
}
