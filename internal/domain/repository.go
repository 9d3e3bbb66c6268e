package domain

import "context"

// UserRepository persists accounts and their daily usage counters.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpsertByGoogleSub(ctx context.Context, profile GoogleProfile) (*User, error)
	UpdateSubscription(ctx context.Context, id string, sub Subscription) (*User, error)
	// CommitDoubtUsage records one consumed solve for the given calendar
	// date and returns the post-increment counter. The update is a single
	// conditional statement so concurrent commits cannot lose increments.
	CommitDoubtUsage(ctx context.Context, id, today string) (int, error)
}

// DoubtRepository persists doubts and their bookmark flags.
type DoubtRepository interface {
	Create(ctx context.Context, userID, question string, subject Subject) (*Doubt, error)
	GetForUser(ctx context.Context, id, userID string) (*Doubt, error)
	ListByUser(ctx context.Context, userID string) ([]Doubt, error)
	ListBookmarked(ctx context.Context, userID string) ([]Doubt, error)
	SetBookmark(ctx context.Context, id, userID string, bookmarked bool) (*Doubt, error)
	// AttachSolution stores the serialized solution on a doubt that does not
	// have one yet. A second write for the same doubt is a no-op.
	AttachSolution(ctx context.Context, id, userID, solution string) error
	CountForUser(ctx context.Context, userID string) (total, bookmarked int, err error)
}

// UsageEvent is one row of the analytics trail written per provider call.
type UsageEvent struct {
	UserID    string
	DoubtID   *string
	EventType string
	Success   bool
	LatencyMS int
	Country   string
}

// UsageRepository records usage events. Failures are advisory; callers log
// and continue.
type UsageRepository interface {
	Insert(ctx context.Context, ev UsageEvent) error
}
