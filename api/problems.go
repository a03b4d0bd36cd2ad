package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/query"
)

type listProblemsResponse struct {
	Total      int            `json:"total"`
	Items      []problemView  `json:"items"`
	Categories []categoryView `json:"categories"`
}

// ListProblems accepts q, category, status and sort (relevance|newest).
func (h *MarketplaceHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.ProblemFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}

	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	res := svc.Browse(r.Context(), f, query.ParseOrder(q.Get("sort")))
	writeJSON(w, listProblemsResponse{
		Total:      len(res.Problems),
		Items:      problemViews(loc, res.Problems),
		Categories: categoryViews(loc, res.Categories),
	}, http.StatusOK)
}

func (h *MarketplaceHandler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	var req marketplace.ProblemInput
	if !decode(w, r, &req) {
		return
	}

	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	p, err := svc.PostProblem(r.Context(), req)
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, newProblemView(loc, p), http.StatusCreated)
}

type problemDetailResponse struct {
	Problem   problemView    `json:"problem"`
	Solutions []solutionView `json:"solutions"`
}

func (h *MarketplaceHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	d, err := svc.ProblemDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, problemDetailResponse{
		Problem:   newProblemView(loc, d.Problem),
		Solutions: solutionViews(loc, d.Solutions),
	}, http.StatusOK)
}

func (h *MarketplaceHandler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	var req marketplace.SolutionInput
	if !decode(w, r, &req) {
		return
	}

	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	s, err := svc.SubmitSolution(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, newSolutionView(loc, s), http.StatusCreated)
}

func (h *MarketplaceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	d, err := svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, newDashboardView(loc, d), http.StatusOK)
}
