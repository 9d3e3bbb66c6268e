package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
)

// fixedNow pins the quota day for deterministic tests.
var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	user    *domain.User
	commits int
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, domain.ErrNotFound
	}
	u := *f.user
	return &u, nil
}

func (f *fakeUserRepo) UpsertByGoogleSub(ctx context.Context, profile domain.GoogleProfile) (*domain.User, error) {
	if f.user == nil {
		f.user = &domain.User{ID: "u1", GoogleSub: profile.Sub, Email: profile.Email, Name: profile.Name,
			Role: domain.UserRoleUser, Subscription: domain.SubscriptionFree}
	}
	u := *f.user
	return &u, nil
}

func (f *fakeUserRepo) UpdateSubscription(ctx context.Context, id string, sub domain.Subscription) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, domain.ErrNotFound
	}
	f.user.Subscription = sub
	u := *f.user
	return &u, nil
}

func (f *fakeUserRepo) CommitDoubtUsage(ctx context.Context, id, today string) (int, error) {
	if f.user == nil || f.user.ID != id {
		return 0, domain.ErrNotFound
	}
	f.commits++
	if f.user.LastDoubtDate != today {
		f.user.DoubtsUsedToday = 1
	} else {
		f.user.DoubtsUsedToday++
	}
	f.user.LastDoubtDate = today
	return f.user.DoubtsUsedToday, nil
}

type fakeDoubtRepo struct {
	doubts []domain.Doubt
	nextID int
}

func (f *fakeDoubtRepo) Create(ctx context.Context, userID, question string, subject domain.Subject) (*domain.Doubt, error) {
	f.nextID++
	d := domain.Doubt{
		ID:        "d" + strconv.Itoa(f.nextID),
		UserID:    userID,
		Question:  question,
		Subject:   subject,
		CreatedAt: fixedNow,
	}
	f.doubts = append(f.doubts, d)
	return &d, nil
}

func (f *fakeDoubtRepo) find(id, userID string) *domain.Doubt {
	for i := range f.doubts {
		if f.doubts[i].ID == id && f.doubts[i].UserID == userID {
			return &f.doubts[i]
		}
	}
	return nil
}

func (f *fakeDoubtRepo) GetForUser(ctx context.Context, id, userID string) (*domain.Doubt, error) {
	if d := f.find(id, userID); d != nil {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDoubtRepo) ListByUser(ctx context.Context, userID string) ([]domain.Doubt, error) {
	var out []domain.Doubt
	for _, d := range f.doubts {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoubtRepo) ListBookmarked(ctx context.Context, userID string) ([]domain.Doubt, error) {
	var out []domain.Doubt
	for _, d := range f.doubts {
		if d.UserID == userID && d.IsBookmarked {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoubtRepo) SetBookmark(ctx context.Context, id, userID string, bookmarked bool) (*domain.Doubt, error) {
	if d := f.find(id, userID); d != nil {
		d.IsBookmarked = bookmarked
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDoubtRepo) AttachSolution(ctx context.Context, id, userID, solution string) error {
	if d := f.find(id, userID); d != nil && d.Solution == nil {
		d.Solution = &solution
	}
	return nil
}

func (f *fakeDoubtRepo) CountForUser(ctx context.Context, userID string) (int, int, error) {
	total, bookmarked := 0, 0
	for _, d := range f.doubts {
		if d.UserID == userID {
			total++
			if d.IsBookmarked {
				bookmarked++
			}
		}
	}
	return total, bookmarked, nil
}

type fakeUsageRepo struct {
	events []domain.UsageEvent
}

func (f *fakeUsageRepo) Insert(ctx context.Context, ev domain.UsageEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type fakeSolver struct {
	solution   *domain.DoubtSolution
	solveErr   error
	simplified string
	simplErr   error
	solves     int
	simplifies int
}

func (f *fakeSolver) Solve(ctx context.Context, question string, subject domain.Subject) (*domain.DoubtSolution, error) {
	f.solves++
	return f.solution, f.solveErr
}

func (f *fakeSolver) Simplify(ctx context.Context, solutionText string, subject domain.Subject) (string, error) {
	f.simplifies++
	return f.simplified, f.simplErr
}

func freeUser() *domain.User {
	return &domain.User{
		ID:           "u1",
		Email:        "asha@example.com",
		Name:         "Asha",
		Role:         domain.UserRoleUser,
		Subscription: domain.SubscriptionFree,
	}
}

func sampleSolution() *domain.DoubtSolution {
	return &domain.DoubtSolution{
		Subject:     "Maths",
		Steps:       []domain.SolutionStep{{Step: 1, Title: "Differentiate", Content: "Apply the power rule."}},
		FinalAnswer: "2x",
	}
}

func newTestApp(users *fakeUserRepo, doubts *fakeDoubtRepo, usage *fakeUsageRepo, solve *fakeSolver) *App {
	return &App{
		Logger:       zerolog.Nop(),
		Users:        users,
		Doubts:       doubts,
		Usage:        usage,
		Solver:       solve,
		JWTSecret:    "test-secret",
		SolveTimeout: 45 * time.Second,
		QuotaLoc:     time.UTC,
		Now:          func() time.Time { return fixedNow },
	}
}

// serve routes the request through a chi router so URL params resolve, with
// the authenticated user injected the way the session middleware would.
func serve(app *App, userID string, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/v1/doubts", app.CreateDoubt)
	r.Get("/v1/doubts", app.ListDoubts)
	r.Get("/v1/doubts/bookmarked", app.ListBookmarkedDoubts)
	r.Patch("/v1/doubts/{id}", app.UpdateDoubt)
	r.Post("/v1/doubts/{id}/simplify", app.SimplifyDoubt)
	r.Get("/v1/auth/user", app.Me)
	r.Get("/v1/user/stats", app.UserStats)
	r.Patch("/v1/user/subscription", app.UpdateSubscription)

	rec := httptest.NewRecorder()
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	r.ServeHTTP(rec, req)
	return rec
}
