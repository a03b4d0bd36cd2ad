package api

import (
	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/query"
	"github.com/garnizeh/ideabridge/pkg/models"
)

// Response shapes: the stored record plus labels in the caller's locale.

type userView struct {
	models.User
	RoleLabel      string `json:"roleLabel"`
	CreatedAtLabel string `json:"createdAtLabel"`
}

type problemView struct {
	models.Problem
	StatusLabel    string `json:"statusLabel"`
	UrgencyLabel   string `json:"urgencyLabel"`
	CategoryLabel  string `json:"categoryLabel"`
	CreatedAtLabel string `json:"createdAtLabel"`
}

type solutionView struct {
	models.Solution
	StatusLabel    string `json:"statusLabel"`
	CreatedAtLabel string `json:"createdAtLabel"`
}

func dateLabel(loc i18n.Locale, ts models.Timestamp) string {
	return i18n.FormatDate(loc, ts.Time)
}

func newUserView(loc i18n.Locale, u models.User) userView {
	return userView{
		User:           u,
		RoleLabel:      i18n.RoleLabel(loc, u.Role),
		CreatedAtLabel: dateLabel(loc, u.CreatedAt),
	}
}

func newProblemView(loc i18n.Locale, p models.Problem) problemView {
	return problemView{
		Problem:        p,
		StatusLabel:    i18n.ProblemStatusLabel(loc, p.Status),
		UrgencyLabel:   i18n.UrgencyLabel(loc, p.Urgency),
		CategoryLabel:  i18n.CategoryLabel(loc, p.Category),
		CreatedAtLabel: dateLabel(loc, p.CreatedAt),
	}
}

func newSolutionView(loc i18n.Locale, s models.Solution) solutionView {
	return solutionView{
		Solution:       s,
		StatusLabel:    i18n.SolutionStatusLabel(loc, s.Status),
		CreatedAtLabel: dateLabel(loc, s.CreatedAt),
	}
}

func problemViews(loc i18n.Locale, ps []models.Problem) []problemView {
	out := make([]problemView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newProblemView(loc, p))
	}
	return out
}

func solutionViews(loc i18n.Locale, ss []models.Solution) []solutionView {
	out := make([]solutionView, 0, len(ss))
	for _, s := range ss {
		out = append(out, newSolutionView(loc, s))
	}
	return out
}

type categoryView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func categoryViews(loc i18n.Locale, cs []string) []categoryView {
	out := make([]categoryView, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryView{Value: c, Label: i18n.CategoryLabel(loc, c)})
	}
	return out
}

type dashboardView struct {
	Stats          query.Stats    `json:"stats"`
	RecentProblems []problemView  `json:"recentProblems"`
	MySolutions    []solutionView `json:"mySolutions"`
}

func newDashboardView(loc i18n.Locale, d marketplace.Dashboard) dashboardView {
	return dashboardView{
		Stats:          d.Stats,
		RecentProblems: problemViews(loc, d.RecentProblems),
		MySolutions:    solutionViews(loc, d.MySolutions),
	}
}
