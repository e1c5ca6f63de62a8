package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tripwise/internal/domain"
	"tripwise/internal/port"
)

type templateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new PostgreSQL-backed TripTemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.TripTemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*domain.TripTemplate, error) {
	var t domain.TripTemplate
	err := r.db.GetContext(ctx, &t,
		`SELECT id, topic, to_char(start_date, 'YYYY-MM-DD') AS start_date,
		        to_char(end_date, 'YYYY-MM-DD') AS end_date, owner_id, created_at, updated_at
		 FROM trip_templates WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &t.UserIDs,
		"SELECT user_id FROM template_users WHERE template_id = $1 ORDER BY added_at", id)
	if err != nil {
		return nil, fmt.Errorf("templateRepo.GetByID users: %w", err)
	}
	return &t, nil
}
