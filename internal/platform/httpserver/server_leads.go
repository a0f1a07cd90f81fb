package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	leaderrors "funnel/contexts/crm/lead-service/domain/errors"
	leadhttp "funnel/contexts/crm/lead-service/transport/http"
)

func writeLeadError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, leadhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLeadDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leaderrors.ErrUnauthorized):
		writeLeadError(w, http.StatusUnauthorized, "unauthorized", "a valid session is required")
	case errors.Is(err, leaderrors.ErrInvalidPage):
		writeLeadError(w, http.StatusBadRequest, "invalid_page", "page and page_size must be positive")
	case errors.Is(err, leaderrors.ErrInvalidLeadInput):
		writeLeadError(w, http.StatusBadRequest, "invalid_lead", "lead input is invalid")
	case errors.Is(err, leaderrors.ErrLeadNotFound):
		writeLeadError(w, http.StatusNotFound, "lead_not_found", "lead not found")
	default:
		writeLeadError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := parsePagination(w, r, writeLeadError)
	if !ok {
		return
	}

	resp, err := s.leads.Handler.ListLeadsHandler(r.Context(), leadhttp.ListLeadsRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		writeLeadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leads.Handler.GetLeadHandler(r.Context(), r.PathValue("lead_id"))
	if err != nil {
		writeLeadDomainError(w, err)
		return
	}
	if resp.Lead == nil {
		writeLeadError(w, http.StatusNotFound, "lead_not_found", "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req leadhttp.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLeadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.leads.Handler.CreateLeadHandler(r.Context(), req)
	if err != nil {
		writeLeadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var req leadhttp.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLeadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.leads.Handler.UpdateLeadHandler(r.Context(), r.PathValue("lead_id"), req)
	if err != nil {
		writeLeadDomainError(w, err)
		return
	}
	if resp == nil {
		writeLeadError(w, http.StatusNotFound, "lead_not_found", "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.leads.Handler.DeleteLeadHandler(r.Context(), r.PathValue("lead_id")); err != nil {
		writeLeadDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
