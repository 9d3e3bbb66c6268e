// Command userrole promotes or demotes accounts and switches their
// subscription tier. Role changes are deliberately kept off the HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

func main() {
	var (
		idFlag    string
		emailFlag string
		roleFlag  string
		tierFlag  string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&roleFlag, "role", "", "role to assign (user, admin)")
	flag.StringVar(&tierFlag, "subscription", "", "subscription to assign (free, pro, premium)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	role := strings.TrimSpace(strings.ToLower(roleFlag))
	tier := strings.TrimSpace(strings.ToLower(tierFlag))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if role == "" && tier == "" {
		exitWithError(errors.New("nothing to do: provide -role and/or -subscription"))
	}
	switch role {
	case "", "user", "admin":
	default:
		exitWithError(fmt.Errorf("unsupported role %q", role))
	}
	if tier != "" {
		if _, err := domain.ParseSubscription(tier); err != nil {
			exitWithError(err)
		}
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userrole").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	users := repo.NewUserRepository(runner)

	user, err := lookupUser(ctx, users, userID, email)
	if err != nil {
		exitWithError(err)
	}

	if role != "" {
		if err := users.UpdateRole(ctx, user.ID, domain.UserRole(role)); err != nil {
			exitWithError(fmt.Errorf("update role: %w", err))
		}
	}
	if tier != "" {
		parsed, _ := domain.ParseSubscription(tier)
		if _, err := users.UpdateSubscription(ctx, user.ID, parsed); err != nil {
			exitWithError(fmt.Errorf("update subscription: %w", err))
		}
	}

	updated, err := users.GetByID(ctx, user.ID)
	if err != nil {
		exitWithError(err)
	}
	fmt.Printf("user %s (%s): role=%s subscription=%s\n", updated.ID, updated.Email, updated.Role, updated.Subscription)
}

func lookupUser(ctx context.Context, users *repo.UserRepositoryPG, id, email string) (*domain.User, error) {
	if id != "" {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lookup user %s: %w", id, err)
		}
		return user, nil
	}
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", email, err)
	}
	return user, nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
