package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// Subscription enumerates billing tiers.
type Subscription string

const (
	SubscriptionFree    Subscription = "free"
	SubscriptionPro     Subscription = "pro"
	SubscriptionPremium Subscription = "premium"
)

// ParseSubscription validates a user-supplied tier name.
func ParseSubscription(raw string) (Subscription, error) {
	switch Subscription(strings.ToLower(strings.TrimSpace(raw))) {
	case SubscriptionFree:
		return SubscriptionFree, nil
	case SubscriptionPro:
		return SubscriptionPro, nil
	case SubscriptionPremium:
		return SubscriptionPremium, nil
	}
	return "", fmt.Errorf("%w: unknown subscription %q", ErrValidation, raw)
}

// User represents an authenticated account within the platform.
type User struct {
	ID              string
	GoogleSub       string
	Email           string
	Name            string
	Picture         string
	Role            UserRole
	Subscription    Subscription
	DoubtsUsedToday int
	LastDoubtDate   string // YYYY-MM-DD, empty until the first solve
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuotaExempt reports whether the daily free-tier cap applies to the user.
func (u User) QuotaExempt() bool {
	return u.Role == UserRoleAdmin || u.Subscription != SubscriptionFree
}

// GoogleProfile carries the verified identity fields used to upsert a user.
type GoogleProfile struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}
