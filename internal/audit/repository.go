package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a transition once per event id. It reports whether a new row
// was written, so redelivered events are detected rather than duplicated.
func (r *Repository) Insert(ctx context.Context, t *domain.StatusTransition) (bool, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO status_transitions (id, event_id, order_id, from_status, to_status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`, t.ID, t.EventID, t.OrderID, t.FromStatus, t.ToStatus, t.OccurredAt)
	if err != nil {
		return false, fmt.Errorf("insert status transition: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert status transition: %w", err)
	}

	return rows == 1, nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]domain.StatusTransition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, order_id, from_status, to_status, occurred_at
		FROM status_transitions
		WHERE order_id = $1
		ORDER BY occurred_at ASC, recorded_at ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status transitions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transitions := []domain.StatusTransition{}
	for rows.Next() {
		var t domain.StatusTransition
		if err := rows.Scan(&t.ID, &t.EventID, &t.OrderID, &t.FromStatus, &t.ToStatus, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan status transition: %w", err)
		}
		transitions = append(transitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list status transitions: %w", err)
	}

	return transitions, nil
}
