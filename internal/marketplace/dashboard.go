package marketplace

import (
	"context"
	"slices"

	"github.com/garnizeh/ideabridge/internal/query"
	"github.com/garnizeh/ideabridge/pkg/models"
)

const dashboardListSize = 5

type Dashboard struct {
	Stats          query.Stats       `json:"stats"`
	RecentProblems []models.Problem  `json:"recentProblems"`
	MySolutions    []models.Solution `json:"mySolutions"`
}

// Dashboard summarizes the marketplace for the signed-in professional.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	u, err := s.requireRole(ctx, models.RoleITProfessional)
	if err != nil {
		return Dashboard{}, err
	}

	problems := s.store.Problems(ctx)
	solutions := s.store.Solutions(ctx)

	open := slices.DeleteFunc(slices.Clone(problems), func(p models.Problem) bool {
		return p.Status != models.ProblemOpen
	})

	return Dashboard{
		Stats:          query.ProfessionalStats(problems, solutions, u.ID),
		RecentProblems: query.Latest(open, dashboardListSize),
		MySolutions:    query.Latest(query.SolutionsByProfessional(solutions, u.ID), dashboardListSize),
	}, nil
}
