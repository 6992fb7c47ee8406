package handler

import (
	"net/http"

	"github.com/jobconnect/jobconnect-go/internal/service"
)

// PageHandler serves the gated role landing pages and the public pages the
// gate redirects to.
type PageHandler struct {
	dashboards *service.DashboardService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(svc *service.DashboardService) *PageHandler {
	return &PageHandler{dashboards: svc}
}

// HandleLogin handles GET /login. The redirect and error query parameters set
// by the gate are echoed back for the client.
func (h *PageHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]string{
		"page":     "login",
		"redirect": q.Get("redirect"),
		"error":    q.Get("error"),
	})
}

// HandlePendingApproval handles GET /pending-approval.
func (h *PageHandler) HandlePendingApproval(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"page":    "pending-approval",
		"message": "Your employer account is awaiting admin approval. Log in again once it has been approved.",
	})
}

// HandleSeeker handles GET /seeker.
func (h *PageHandler) HandleSeeker(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	d, err := h.dashboards.Seeker(r.Context(), actor.UserID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleEmployer handles GET /employer.
func (h *PageHandler) HandleEmployer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	d, err := h.dashboards.Employer(r.Context(), actor.UserID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleAdmin handles GET /admin.
func (h *PageHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboards.Admin(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
