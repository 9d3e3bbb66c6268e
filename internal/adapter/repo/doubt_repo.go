package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// DoubtRepositoryPG implements domain.DoubtRepository backed by PostgreSQL.
type DoubtRepositoryPG struct {
	db infra.SQLExecutor
}

// NewDoubtRepository creates a new DoubtRepositoryPG.
func NewDoubtRepository(db infra.SQLExecutor) *DoubtRepositoryPG {
	return &DoubtRepositoryPG{db: db}
}

// Create stores a new doubt without a solution yet.
func (r *DoubtRepositoryPG) Create(ctx context.Context, userID, question string, subject domain.Subject) (*domain.Doubt, error) {
	row := r.db.QueryRow(ctx, sqlinline.QInsertDoubt, userID, question, string(subject))
	return scanDoubt(row)
}

// GetForUser fetches a doubt only if it belongs to the given user.
func (r *DoubtRepositoryPG) GetForUser(ctx context.Context, id, userID string) (*domain.Doubt, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectDoubtForUser, id, userID)
	return scanDoubt(row)
}

// ListByUser returns the user's doubts, newest first.
func (r *DoubtRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Doubt, error) {
	rows, err := r.db.Query(ctx, sqlinline.QSelectUserDoubts, userID)
	if err != nil {
		return nil, err
	}
	return collectDoubts(rows)
}

// ListBookmarked returns the user's bookmarked doubts, newest first.
func (r *DoubtRepositoryPG) ListBookmarked(ctx context.Context, userID string) ([]domain.Doubt, error) {
	rows, err := r.db.Query(ctx, sqlinline.QSelectBookmarkedDoubts, userID)
	if err != nil {
		return nil, err
	}
	return collectDoubts(rows)
}

// SetBookmark toggles the bookmark flag and returns the updated doubt.
func (r *DoubtRepositoryPG) SetBookmark(ctx context.Context, id, userID string, bookmarked bool) (*domain.Doubt, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSetDoubtBookmark, id, userID, bookmarked)
	return scanDoubt(row)
}

// AttachSolution stores the serialized solution on a doubt that has none.
func (r *DoubtRepositoryPG) AttachSolution(ctx context.Context, id, userID, solution string) error {
	var updated string
	if err := r.db.QueryRow(ctx, sqlinline.QAttachDoubtSolution, id, userID, solution).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	return nil
}

// CountForUser returns the user's total and bookmarked doubt counts.
func (r *DoubtRepositoryPG) CountForUser(ctx context.Context, userID string) (int, int, error) {
	var total, bookmarked int
	if err := r.db.QueryRow(ctx, sqlinline.QCountUserDoubts, userID).Scan(&total, &bookmarked); err != nil {
		return 0, 0, err
	}
	return total, bookmarked, nil
}

func scanDoubt(row pgx.Row) (*domain.Doubt, error) {
	var d domain.Doubt
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Question,
		&d.Subject,
		&d.Solution,
		&d.IsBookmarked,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func collectDoubts(rows pgx.Rows) ([]domain.Doubt, error) {
	defer rows.Close()
	out := make([]domain.Doubt, 0, 16)
	for rows.Next() {
		var d domain.Doubt
		if err := rows.Scan(&d.ID, &d.UserID, &d.Question, &d.Subject, &d.Solution, &d.IsBookmarked, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
