package query

import "github.com/garnizeh/ideabridge/pkg/models"

type Stats struct {
	TotalProblems int `json:"totalProblems"`
	MySolutions   int `json:"mySolutions"`
	Accepted      int `json:"acceptedSolutions"`
	Pending       int `json:"pendingSolutions"`
}

func ProfessionalStats(problems []models.Problem, solutions []models.Solution, professionalID string) Stats {
	mine := SolutionsByProfessional(solutions, professionalID)
	return Stats{
		TotalProblems: len(problems),
		MySolutions:   len(mine),
		Accepted:      CountSolutions(mine, models.SolutionAccepted),
		Pending:       CountSolutions(mine, models.SolutionPending),
	}
}
