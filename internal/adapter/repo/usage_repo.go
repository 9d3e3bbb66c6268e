package repo

import (
	"context"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UsageRepositoryPG implements domain.UsageRepository backed by PostgreSQL.
type UsageRepositoryPG struct {
	db infra.SQLExecutor
}

// NewUsageRepository creates a new UsageRepositoryPG.
func NewUsageRepository(db infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{db: db}
}

// Insert appends one usage event to the analytics trail.
func (r *UsageRepositoryPG) Insert(ctx context.Context, ev domain.UsageEvent) error {
	var id string
	return r.db.QueryRow(ctx, sqlinline.QInsertUsageEvent,
		ev.UserID,
		ev.DoubtID,
		ev.EventType,
		ev.Success,
		ev.LatencyMS,
		ev.Country,
	).Scan(&id)
}
