package api

import (
	"net/http"

	"github.com/garnizeh/ideabridge/internal/marketplace"
)

type sessionResponse struct {
	User userView `json:"user"`
}

func (h *MarketplaceHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req marketplace.LoginInput
	if !decode(w, r, &req) {
		return
	}

	svc := h.service(r.Context())
	loc := h.locale(r, svc)
	req.Locale = loc

	u, err := svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, sessionResponse{User: newUserView(loc, u)}, http.StatusOK)
}

func (h *MarketplaceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req marketplace.RegisterInput
	if !decode(w, r, &req) {
		return
	}

	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	u, err := svc.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, sessionResponse{User: newUserView(loc, u)}, http.StatusCreated)
}

func (h *MarketplaceHandler) Logout(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r.Context())
	if err := svc.Logout(r.Context()); err != nil {
		writeServiceError(w, h.locale(r, svc), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
