// Package repo implements the domain repositories over PostgreSQL.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	db infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(db infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{db: db}
}

// UpsertByGoogleSub inserts or refreshes a user row from verified Google
// profile claims and returns the stored row.
func (r *UserRepositoryPG) UpsertByGoogleSub(ctx context.Context, profile domain.GoogleProfile) (*domain.User, error) {
	row := r.db.QueryRow(ctx, sqlinline.QUpsertGoogleUser,
		profile.Sub,
		profile.Email,
		profile.Name,
		profile.Picture,
	)
	return scanUser(row)
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectUserByID, id)
	return scanUser(row)
}

// GetByEmail fetches a user by email address.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectUserByEmail, email)
	return scanUser(row)
}

// UpdateSubscription switches the user's tier and returns the updated row.
func (r *UserRepositoryPG) UpdateSubscription(ctx context.Context, id string, tier domain.Subscription) (*domain.User, error) {
	row := r.db.QueryRow(ctx, sqlinline.QUpdateUserSubscription, id, string(tier))
	return scanUser(row)
}

// UpdateRole switches the user's role.
func (r *UserRepositoryPG) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	var updated string
	if err := r.db.QueryRow(ctx, sqlinline.QUpdateUserRole, id, string(role)).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// CommitDoubtUsage records one consumed solve for today and returns the new
// count. The conditional bump and the date write happen in a single
// statement, so concurrent solves cannot lose increments across a day
// rollover.
func (r *UserRepositoryPG) CommitDoubtUsage(ctx context.Context, id string, today string) (int, error) {
	var used int
	if err := r.db.QueryRow(ctx, sqlinline.QCommitDoubtUsage, id, today).Scan(&used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return used, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var lastDate *string
	err := row.Scan(
		&u.ID,
		&u.GoogleSub,
		&u.Email,
		&u.Name,
		&u.Picture,
		&u.Role,
		&u.Subscription,
		&u.DoubtsUsedToday,
		&lastDate,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if lastDate != nil {
		u.LastDoubtDate = *lastDate
	}
	return &u, nil
}
