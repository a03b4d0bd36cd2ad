package query_test

import (
	"slices"
	"testing"
	"time"

	"github.com/garnizeh/ideabridge/internal/query"
	"github.com/garnizeh/ideabridge/pkg/models"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) models.Timestamp {
	return models.NewTimestamp(t0.Add(d))
}

func sampleProblems() []models.Problem {
	return []models.Problem{
		{ID: "1", Title: "Fix login bug", Description: "500 on submit", Category: "webDev", Status: models.ProblemOpen, CreatedAt: at(0)},
		{ID: "2", Title: "Slow queries", Description: "Postgres LOGIN audit is slow", Category: "database", Status: models.ProblemInProgress, CreatedAt: at(time.Hour)},
		{ID: "3", Title: "App crash", Description: "iOS only", Category: "mobile", Status: models.ProblemOpen, CreatedAt: at(2 * time.Hour)},
		{ID: "4", Title: "Landing page", Description: "needs redesign", Category: "webDev", Status: models.ProblemClosed},
		{ID: "5", Title: "Uncategorized", Description: "", Category: "", Status: models.ProblemOpen, CreatedAt: at(30 * time.Minute)},
	}
}

func ids(ps []models.Problem) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterProblems(t *testing.T) {
	problems := sampleProblems()

	cases := []struct {
		name   string
		filter query.ProblemFilter
		want   []string
	}{
		{"no filter", query.ProblemFilter{}, []string{"1", "2", "3", "4", "5"}},
		{"all sentinels", query.ProblemFilter{Category: query.All, Status: query.All}, []string{"1", "2", "3", "4", "5"}},
		{"text matches title or description, case-insensitive", query.ProblemFilter{Query: "login"}, []string{"1", "2"}},
		{"whitespace query is matched literally", query.ProblemFilter{Query: " "}, []string{"1", "2", "3", "4"}},
		{"trailing space is part of the query", query.ProblemFilter{Query: "bug "}, []string{}},
		{"category", query.ProblemFilter{Category: "webDev"}, []string{"1", "4"}},
		{"status", query.ProblemFilter{Status: "open"}, []string{"1", "3", "5"}},
		{"conjunctive", query.ProblemFilter{Query: "LOGIN", Category: "webDev", Status: "open"}, []string{"1"}},
		{"no match", query.ProblemFilter{Category: "webDev", Status: "in_progress"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(query.FilterProblems(problems, tc.filter))
			if !equal(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFilterByCategory_PartitionsFullSet(t *testing.T) {
	// every record carries a category here; blank categories are not a filter value
	problems := query.FilterProblems(sampleProblems(), query.ProblemFilter{})
	problems = slices.DeleteFunc(problems, func(p models.Problem) bool { return p.Category == "" })

	seen := make(map[string]bool)
	total := 0
	for _, c := range query.Categories(problems) {
		part := query.FilterProblems(problems, query.ProblemFilter{Category: c})
		for _, p := range part {
			if p.Category != c {
				t.Fatalf("category %q partition contains %q", c, p.Category)
			}
			seen[p.ID] = true
		}
		total += len(part)
	}

	if total != len(problems) || len(seen) != len(problems) {
		t.Fatalf("partitions cover %d records (%d distinct), want %d", total, len(seen), len(problems))
	}
}

func TestCategories(t *testing.T) {
	got := query.Categories(sampleProblems())
	want := []string{"webDev", "database", "mobile"}
	if !equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFindProblem(t *testing.T) {
	problems := sampleProblems()
	p, ok := query.FindProblem(problems, "3")
	if !ok || p.Title != "App crash" {
		t.Fatalf("expected problem 3, got %#v ok=%v", p, ok)
	}
	if _, ok := query.FindProblem(problems, "deleted"); ok {
		t.Fatalf("expected dangling id to be not found")
	}
	if _, ok := query.FindProblem(nil, "1"); ok {
		t.Fatalf("expected not found in empty slice")
	}
}

func TestSortByCreatedDesc(t *testing.T) {
	problems := sampleProblems()
	got := ids(query.SortByCreatedDesc(problems))
	// zero createdAt (4) sorts as earliest
	want := []string{"3", "2", "5", "1", "4"}
	if !equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	// input untouched
	if !equal(ids(problems), []string{"1", "2", "3", "4", "5"}) {
		t.Fatalf("input was reordered: %v", ids(problems))
	}
}

func TestSortByCreatedDesc_StableOnTies(t *testing.T) {
	ps := []models.Problem{
		{ID: "a", CreatedAt: at(0)},
		{ID: "b", CreatedAt: at(time.Minute)},
		{ID: "c", CreatedAt: at(0)},
		{ID: "d"},
		{ID: "e"},
	}
	got := ids(query.SortByCreatedDesc(ps))
	want := []string{"b", "a", "c", "d", "e"}
	if !equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSort_IdenticalContentDifferentTimes(t *testing.T) {
	ps := []models.Problem{
		{ID: "1", Title: "same", CreatedAt: at(0)},
		{ID: "2", Title: "same", CreatedAt: at(time.Millisecond)},
	}
	if got := ids(query.SortProblems(ps, query.OrderRelevance)); !equal(got, []string{"1", "2"}) {
		t.Fatalf("relevance should keep insertion order, got %v", got)
	}
	if got := ids(query.SortProblems(ps, query.ParseOrder("newest"))); !equal(got, []string{"2", "1"}) {
		t.Fatalf("newest should reverse, got %v", got)
	}
	if ps[0].ID != "1" {
		t.Fatalf("SortProblems must not reorder its input")
	}
}

func TestParseOrder(t *testing.T) {
	if query.ParseOrder("newest") != query.OrderNewest {
		t.Fatalf("expected newest")
	}
	for _, s := range []string{"", "relevance", "oldest", "NEWEST"} {
		if query.ParseOrder(s) != query.OrderRelevance {
			t.Fatalf("expected relevance for %q", s)
		}
	}
}

func TestLatest(t *testing.T) {
	problems := sampleProblems()
	if got := ids(query.Latest(problems, 2)); !equal(got, []string{"3", "2"}) {
		t.Fatalf("got %v", got)
	}
	if got := query.Latest(problems, 10); len(got) != len(problems) {
		t.Fatalf("expected all %d, got %d", len(problems), len(got))
	}
	if got := query.Latest(problems, 0); len(got) != 0 {
		t.Fatalf("expected none, got %d", len(got))
	}
}

func TestSolutionPartitionsAndStats(t *testing.T) {
	problems := sampleProblems()
	solutions := []models.Solution{
		{ID: "s1", ProblemID: "1", ProfessionalID: "p1", Status: models.SolutionPending},
		{ID: "s2", ProblemID: "1", ProfessionalID: "p2", Status: models.SolutionAccepted},
		{ID: "s3", ProblemID: "3", ProfessionalID: "p1", Status: models.SolutionAccepted},
		{ID: "s4", ProblemID: "gone", ProfessionalID: "p1", Status: models.SolutionRejected},
	}

	if got := query.SolutionsByProfessional(solutions, "p1"); len(got) != 3 {
		t.Fatalf("expected 3 for p1, got %d", len(got))
	}
	if got := query.SolutionsForProblem(solutions, "1"); len(got) != 2 {
		t.Fatalf("expected 2 for problem 1, got %d", len(got))
	}
	if got := query.SolutionsForProblem(solutions, "none"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}

	st := query.ProfessionalStats(problems, solutions, "p1")
	want := query.Stats{TotalProblems: 5, MySolutions: 3, Accepted: 1, Pending: 1}
	if st != want {
		t.Fatalf("got %+v want %+v", st, want)
	}
}
