package marketplace_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/query"
	"github.com/garnizeh/ideabridge/internal/repository/memory"
	"github.com/garnizeh/ideabridge/internal/store"
	"github.com/garnizeh/ideabridge/pkg/models"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func stepClock() func() time.Time {
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * time.Millisecond)
		n++
		return t
	}
}

func newService(t *testing.T) *marketplace.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := memory.New().Profile("test")
	st := store.New(kv, store.WithLogger(logger), store.WithClock(stepClock()))
	return marketplace.New(st, logger)
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *marketplace.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Fields
}

func loginAs(t *testing.T, svc *marketplace.Service, email string, role models.Role) models.User {
	t.Helper()
	u, err := svc.Login(context.Background(), marketplace.LoginInput{Email: email, Password: "secret1", Role: role, Locale: i18n.English})
	if err != nil {
		t.Fatalf("Login(%s): %v", email, err)
	}
	return u
}

func TestLogin_DemoAccounts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	u := loginAs(t, svc, "pro@example.com", models.RoleProblemOwner)
	if u.ID != "2" || u.Role != models.RoleITProfessional || u.Name != "IT Professional" {
		t.Fatalf("unexpected demo professional: %#v", u)
	}
	if len(u.Skills) != 3 || u.Skills[0] != "React" {
		t.Fatalf("unexpected skills: %v", u.Skills)
	}

	cur, err := svc.CurrentUser(ctx)
	if err != nil || cur.ID != "2" {
		t.Fatalf("expected current user 2, got %#v err=%v", cur, err)
	}

	u, err = svc.Login(ctx, marketplace.LoginInput{Email: "owner@example.com", Password: "secret1", Locale: i18n.Korean})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != "1" || u.Name != i18n.T(i18n.Korean, "auth.login.problemOwner") {
		t.Fatalf("unexpected demo owner: %#v", u)
	}
}

func TestLogin_NewUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// a short password never unlocks the demo account
	u, err := svc.Login(ctx, marketplace.LoginInput{Email: "owner@example.com", Password: "123", Role: models.RoleITProfessional})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != "1741942800000" || u.Name != "owner" || u.Role != models.RoleITProfessional {
		t.Fatalf("unexpected user: %#v", u)
	}

	u, err = svc.Login(ctx, marketplace.LoginInput{Email: "kim@corp.kr", Password: "whatever", Role: "admin"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Name != "kim" || u.Role != models.RoleProblemOwner {
		t.Fatalf("invalid role should default to problem_owner: %#v", u)
	}

	if _, err := svc.Login(ctx, marketplace.LoginInput{Email: "  "}); fields(t, err)["email"] == "" {
		t.Fatalf("expected email error")
	}
}

func TestRegister(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, marketplace.RegisterInput{Role: models.RoleITProfessional, Password: "123"})
	f := fields(t, err)
	for field, key := range map[string]string{
		"name":     "auth.register.nameRequired",
		"email":    "auth.register.emailRequired",
		"password": "auth.register.passwordRequired",
		"skills":   "auth.register.skillsRequired",
	} {
		if f[field] != key {
			t.Fatalf("field %s: got %q want %q", field, f[field], key)
		}
	}

	u, err := svc.Register(ctx, marketplace.RegisterInput{
		Name:     "Jiwoo",
		Email:    "jiwoo@example.com",
		Password: "secret1",
		Role:     models.RoleITProfessional,
		Skills:   " Go, React,, SQL ",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(u.Skills) != 3 || u.Skills[2] != "SQL" {
		t.Fatalf("unexpected skills: %q", u.Skills)
	}
	if u.Phone != nil || models.Value(u.Company) != "Acme" {
		t.Fatalf("unexpected optionals: %#v", u)
	}

	owner, err := svc.Register(ctx, marketplace.RegisterInput{Name: "Min", Email: "min@example.com", Password: "secret1", Skills: "Excel"})
	if err != nil {
		t.Fatalf("Register owner: %v", err)
	}
	if owner.Skills != nil {
		t.Fatalf("owners carry no skills, got %v", owner.Skills)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, marketplace.ProfileInput{Name: "x", Email: "y"}); !errors.Is(err, marketplace.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	before := loginAs(t, svc, "pro@example.com", "")

	if _, err := svc.UpdateProfile(ctx, marketplace.ProfileInput{}); len(fields(t, err)) != 2 {
		t.Fatalf("expected name and email errors")
	}

	u, err := svc.UpdateProfile(ctx, marketplace.ProfileInput{Name: "Pro", Email: "pro@example.com", Skills: "Go", Bio: "10y"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.ID != before.ID || u.Role != before.Role || !u.CreatedAt.Equal(before.CreatedAt.Time) {
		t.Fatalf("identity changed: %#v", u)
	}
	cur, _ := svc.CurrentUser(ctx)
	if cur.Name != "Pro" || models.Value(cur.Bio) != "10y" || len(cur.Skills) != 1 {
		t.Fatalf("profile not persisted: %#v", cur)
	}
}

func TestLogout(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	loginAs(t, svc, "owner@example.com", "")
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.CurrentUser(ctx); !errors.Is(err, marketplace.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestPostProblem(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	in := marketplace.ProblemInput{Title: "Fix login bug", Description: "500 on submit", Category: "webDev"}
	if _, err := svc.PostProblem(ctx, in); !errors.Is(err, marketplace.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	loginAs(t, svc, "pro@example.com", "")
	if _, err := svc.PostProblem(ctx, in); !errors.Is(err, marketplace.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for professional, got %v", err)
	}

	loginAs(t, svc, "owner@example.com", "")
	_, err := svc.PostProblem(ctx, marketplace.ProblemInput{Category: "gardening"})
	f := fields(t, err)
	if f["title"] != "problems.new.titleRequired" || f["description"] == "" || f["category"] != "problems.new.categoryRequired" {
		t.Fatalf("unexpected validation: %v", f)
	}

	p, err := svc.PostProblem(ctx, in)
	if err != nil {
		t.Fatalf("PostProblem: %v", err)
	}
	if p.ID == "" || p.OwnerID != "1" || p.Status != models.ProblemOpen || p.Urgency != models.UrgencyMedium {
		t.Fatalf("unexpected problem: %#v", p)
	}
	if p.CreatedAt.IsZero() || !p.UpdatedAt.Equal(p.CreatedAt.Time) {
		t.Fatalf("expected createdAt == updatedAt, got %v %v", p.CreatedAt, p.UpdatedAt)
	}
	if p.Budget != nil {
		t.Fatalf("blank budget should be absent")
	}

	res := svc.Browse(ctx, query.ProblemFilter{Query: "login", Category: "webDev", Status: "open"}, query.OrderRelevance)
	if len(res.Problems) != 1 || res.Problems[0].ID != p.ID {
		t.Fatalf("expected the posted problem in browse, got %#v", res.Problems)
	}
}

func TestSubmitSolution(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	loginAs(t, svc, "owner@example.com", "")
	p, err := svc.PostProblem(ctx, marketplace.ProblemInput{Title: "Slow queries", Description: "reports time out", Category: "database", Urgency: models.UrgencyHigh})
	if err != nil {
		t.Fatalf("PostProblem: %v", err)
	}

	in := marketplace.SolutionInput{Title: "Add indexes", ProposedSolution: "Index the report columns", EstimatedTime: "2 days"}
	if _, err := svc.SubmitSolution(ctx, p.ID, in); !errors.Is(err, marketplace.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for owner, got %v", err)
	}

	pro := loginAs(t, svc, "pro@example.com", "")
	if _, err := svc.SubmitSolution(ctx, "missing", in); !errors.Is(err, marketplace.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.SubmitSolution(ctx, p.ID, marketplace.SolutionInput{}); len(fields(t, err)) != 2 {
		t.Fatalf("expected title and proposedSolution errors")
	}

	sol, err := svc.SubmitSolution(ctx, p.ID, in)
	if err != nil {
		t.Fatalf("SubmitSolution: %v", err)
	}
	if sol.ProblemID != p.ID || sol.ProfessionalID != pro.ID || sol.Status != models.SolutionPending {
		t.Fatalf("unexpected solution: %#v", sol)
	}
	if models.Value(sol.EstimatedTime) != "2 days" || sol.EstimatedCost != nil {
		t.Fatalf("unexpected optionals: %#v", sol)
	}

	d, err := svc.ProblemDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("ProblemDetail: %v", err)
	}
	if d.Problem.Urgency != models.UrgencyHigh || len(d.Solutions) != 1 || d.Solutions[0].ID != sol.ID {
		t.Fatalf("unexpected detail: %#v", d)
	}
	if _, err := svc.ProblemDetail(ctx, "missing"); !errors.Is(err, marketplace.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitSolution_ClosedProblem(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(memory.New().Profile("test"), store.WithLogger(logger))
	svc := marketplace.New(st, logger)
	ctx := context.Background()

	p, err := st.AddProblem(ctx, models.Problem{Title: "done", Category: "other", Status: models.ProblemClosed})
	if err != nil {
		t.Fatalf("AddProblem: %v", err)
	}

	loginAs(t, svc, "pro@example.com", "")
	_, err = svc.SubmitSolution(ctx, p.ID, marketplace.SolutionInput{Title: "t", ProposedSolution: "s"})
	if !errors.Is(err, marketplace.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	loginAs(t, svc, "owner@example.com", "")
	var problems []models.Problem
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		p, err := svc.PostProblem(ctx, marketplace.ProblemInput{Title: title, Description: title, Category: "other"})
		if err != nil {
			t.Fatalf("PostProblem: %v", err)
		}
		problems = append(problems, p)
	}

	if _, err := svc.Dashboard(ctx); !errors.Is(err, marketplace.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for owner, got %v", err)
	}

	loginAs(t, svc, "pro@example.com", "")
	for _, p := range problems[:2] {
		if _, err := svc.SubmitSolution(ctx, p.ID, marketplace.SolutionInput{Title: "t", ProposedSolution: "s"}); err != nil {
			t.Fatalf("SubmitSolution: %v", err)
		}
	}

	d, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := query.Stats{TotalProblems: 6, MySolutions: 2, Pending: 2}
	if d.Stats != want {
		t.Fatalf("stats: got %+v want %+v", d.Stats, want)
	}
	if len(d.RecentProblems) != 5 || d.RecentProblems[0].Title != "f" {
		t.Fatalf("expected 5 newest open problems, got %#v", d.RecentProblems)
	}
	if len(d.MySolutions) != 2 || d.MySolutions[0].ProblemID != problems[1].ID {
		t.Fatalf("expected own solutions newest first, got %#v", d.MySolutions)
	}
}
