package marketplace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garnizeh/ideabridge/internal/query"
	"github.com/garnizeh/ideabridge/pkg/models"
)

type ProblemInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Urgency     models.Urgency `json:"urgency"`
	Budget      string         `json:"budget"`
	Timeline    string         `json:"timeline"`
}

type SolutionInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ProposedSolution string `json:"proposedSolution"`
	EstimatedTime    string `json:"estimatedTime"`
	EstimatedCost    string `json:"estimatedCost"`
}

type ProblemDetail struct {
	Problem   models.Problem    `json:"problem"`
	Solutions []models.Solution `json:"solutions"`
}

type BrowseResult struct {
	Problems   []models.Problem `json:"problems"`
	Categories []string         `json:"categories"`
}

func (s *Service) PostProblem(ctx context.Context, in ProblemInput) (models.Problem, error) {
	u, err := s.requireRole(ctx, models.RoleProblemOwner)
	if err != nil {
		return models.Problem{}, err
	}

	fe := fieldErrors{}
	fe.require("title", in.Title, "problems.new.titleRequired")
	fe.require("description", in.Description, "problems.new.descriptionRequired")
	if !models.IsCategory(in.Category) {
		fe["category"] = "problems.new.categoryRequired"
	}
	if err := fe.err(); err != nil {
		return models.Problem{}, err
	}

	urgency := in.Urgency
	if !urgency.Valid() {
		urgency = models.UrgencyMedium
	}

	now := s.now()
	p, err := s.store.AddProblem(ctx, models.Problem{
		OwnerID:     u.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Urgency:     urgency,
		Status:      models.ProblemOpen,
		Budget:      models.Optional(in.Budget),
		Timeline:    models.Optional(in.Timeline),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return models.Problem{}, fmt.Errorf("post problem: %w", err)
	}
	s.logger.Info("problem posted", slog.String("problem_id", p.ID), slog.String("owner_id", u.ID))
	return p, nil
}

// SubmitSolution proposes a solution to an open problem.
func (s *Service) SubmitSolution(ctx context.Context, problemID string, in SolutionInput) (models.Solution, error) {
	u, err := s.requireRole(ctx, models.RoleITProfessional)
	if err != nil {
		return models.Solution{}, err
	}

	p, ok := query.FindProblem(s.store.Problems(ctx), problemID)
	if !ok {
		return models.Solution{}, ErrNotFound
	}
	if p.Status != models.ProblemOpen {
		return models.Solution{}, ErrNotOpen
	}

	fe := fieldErrors{}
	fe.require("title", in.Title, "problems.detail.titleRequired")
	fe.require("proposedSolution", in.ProposedSolution, "problems.detail.solutionRequired")
	if err := fe.err(); err != nil {
		return models.Solution{}, err
	}

	now := s.now()
	sol, err := s.store.AddSolution(ctx, models.Solution{
		ProblemID:        p.ID,
		ProfessionalID:   u.ID,
		Title:            in.Title,
		Description:      in.Description,
		ProposedSolution: in.ProposedSolution,
		EstimatedTime:    models.Optional(in.EstimatedTime),
		EstimatedCost:    models.Optional(in.EstimatedCost),
		Status:           models.SolutionPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return models.Solution{}, fmt.Errorf("submit solution: %w", err)
	}
	s.logger.Info("solution submitted", slog.String("solution_id", sol.ID), slog.String("problem_id", p.ID))
	return sol, nil
}

func (s *Service) ProblemDetail(ctx context.Context, id string) (ProblemDetail, error) {
	p, ok := query.FindProblem(s.store.Problems(ctx), id)
	if !ok {
		return ProblemDetail{}, ErrNotFound
	}
	return ProblemDetail{
		Problem:   p,
		Solutions: query.SolutionsForProblem(s.store.Solutions(ctx), id),
	}, nil
}

// Browse lists the problems matching f in the given order, with the
// categories present in the full collection for the filter menu.
func (s *Service) Browse(ctx context.Context, f query.ProblemFilter, order query.Order) BrowseResult {
	all := s.store.Problems(ctx)
	return BrowseResult{
		Problems:   query.SortProblems(query.FilterProblems(all, f), order),
		Categories: query.Categories(all),
	}
}
