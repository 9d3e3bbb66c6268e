// Package quota implements the daily solve allowance for free-tier users.
// All functions are pure: the caller supplies "today" so behavior is
// deterministic under test.
package quota

import (
	"time"

	"server/internal/domain"
)

// FreeDailyLimit is the number of solves a free-tier user gets per calendar day.
const FreeDailyLimit = 5

// State is the persisted usage snapshot for one user.
type State struct {
	Subscription domain.Subscription
	Role         domain.UserRole
	UsedToday    int
	LastDate     string // YYYY-MM-DD; counter is meaningful only for this date
}

// StateOf extracts the quota-relevant fields from a user row.
func StateOf(u *domain.User) State {
	return State{
		Subscription: u.Subscription,
		Role:         u.Role,
		UsedToday:    u.DoubtsUsedToday,
		LastDate:     u.LastDoubtDate,
	}
}

// Decision is the outcome of a reservation check.
type Decision struct {
	Allowed   bool
	Remaining *int // remaining after this solve; nil when unlimited
	Reason    string
}

// Today formats the calendar date for the deployment's timezone convention.
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return now.Format("2006-01-02")
}

// EffectiveUsed returns the used count relative to today: a stored counter
// from a previous date counts as zero.
func EffectiveUsed(s State, today string) int {
	if s.LastDate == today {
		return s.UsedToday
	}
	return 0
}

func exempt(s State) bool {
	return s.Role == domain.UserRoleAdmin || s.Subscription != domain.SubscriptionFree
}

// CheckAndReserve decides whether one more solve is permitted today. It must
// be called, and must allow, before Commit for the same request.
func CheckAndReserve(s State, today string) Decision {
	if exempt(s) {
		return Decision{Allowed: true}
	}
	used := EffectiveUsed(s, today)
	if used >= FreeDailyLimit {
		return Decision{Reason: "daily limit reached"}
	}
	remaining := FreeDailyLimit - (used + 1)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: true, Remaining: &remaining}
}

// Commit records one consumed solve, resetting the counter when the date
// rolled over. Submitting a doubt consumes quota regardless of whether the
// solve itself succeeds.
func Commit(s State, today string) State {
	if s.LastDate != today {
		s.UsedToday = 1
		s.LastDate = today
		return s
	}
	s.UsedToday++
	return s
}

// Remaining reports the solves left today, nil when unlimited. Used for the
// stats snapshot rather than reservation.
func Remaining(s State, today string) *int {
	if exempt(s) {
		return nil
	}
	left := FreeDailyLimit - EffectiveUsed(s, today)
	if left < 0 {
		left = 0
	}
	return &left
}
