// Package query holds the derived views computed over store collections.
// Nothing here touches storage; every function works on the slices the store
// returns and never mutates its input.
package query

import (
	"slices"
	"strings"

	"github.com/garnizeh/ideabridge/pkg/models"
)

// All disables a filter criterion, as does the empty string.
const All = "all"

type ProblemFilter struct {
	Query    string
	Category string
	Status   string
}

func active(v string) bool {
	return v != "" && v != All
}

// Match reports whether p satisfies every active criterion.
func (f ProblemFilter) Match(p models.Problem) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if active(f.Category) && p.Category != f.Category {
		return false
	}
	if active(f.Status) && string(p.Status) != f.Status {
		return false
	}
	return true
}

func FilterProblems(problems []models.Problem, f ProblemFilter) []models.Problem {
	out := make([]models.Problem, 0, len(problems))
	for _, p := range problems {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists the distinct non-empty categories in first-seen order.
func Categories(problems []models.Problem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range problems {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func FindProblem(problems []models.Problem, id string) (models.Problem, bool) {
	i := slices.IndexFunc(problems, func(p models.Problem) bool { return p.ID == id })
	if i < 0 {
		return models.Problem{}, false
	}
	return problems[i], true
}

func SolutionsByProfessional(solutions []models.Solution, professionalID string) []models.Solution {
	return filterSolutions(solutions, func(s models.Solution) bool { return s.ProfessionalID == professionalID })
}

func SolutionsForProblem(solutions []models.Solution, problemID string) []models.Solution {
	return filterSolutions(solutions, func(s models.Solution) bool { return s.ProblemID == problemID })
}

func CountSolutions(solutions []models.Solution, status models.SolutionStatus) int {
	n := 0
	for _, s := range solutions {
		if s.Status == status {
			n++
		}
	}
	return n
}

func filterSolutions(solutions []models.Solution, keep func(models.Solution) bool) []models.Solution {
	out := make([]models.Solution, 0)
	for _, s := range solutions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
