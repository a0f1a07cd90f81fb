package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	campaignerrors "funnel/contexts/crm/campaign-service/domain/errors"
	campaignhttp "funnel/contexts/crm/campaign-service/transport/http"
)

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrUnauthorized):
		writeCampaignError(w, http.StatusUnauthorized, "unauthorized", "a valid session is required")
	case errors.Is(err, campaignerrors.ErrInvalidPage):
		writeCampaignError(w, http.StatusBadRequest, "invalid_page", "page and page_size must be positive")
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput):
		writeCampaignError(w, http.StatusBadRequest, "invalid_campaign", "campaign input is invalid")
	case errors.Is(err, campaignerrors.ErrInvalidMembershipStatus):
		writeCampaignError(w, http.StatusBadRequest, "invalid_membership_status", "membership status is not supported")
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", "campaign not found")
	case errors.Is(err, campaignerrors.ErrMembershipNotFound):
		writeCampaignError(w, http.StatusNotFound, "membership_not_found", "campaign membership not found")
	case errors.Is(err, campaignerrors.ErrLeadAlreadyInCampaign):
		writeCampaignError(w, http.StatusConflict, "lead_already_in_campaign", "lead is already in this campaign")
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := parsePagination(w, r, writeCampaignError)
	if !ok {
		return
	}

	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context(), campaignhttp.ListCampaignsRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	if resp.Campaign == nil {
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", "campaign not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.UpdateCampaignHandler(r.Context(), r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	if resp == nil {
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", "campaign not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.campaigns.Handler.DeleteCampaignHandler(r.Context(), r.PathValue("campaign_id")); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCampaignLeads(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.ListMembershipsHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCampaignLead(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.AddLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.AddLeadHandler(r.Context(), r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCampaignLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.UpdateMembershipStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.campaigns.Handler.UpdateMembershipStatusHandler(r.Context(), r.PathValue("membership_id"), req); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCampaignLead(w http.ResponseWriter, r *http.Request) {
	if err := s.campaigns.Handler.RemoveLeadHandler(r.Context(), r.PathValue("campaign_id"), r.PathValue("lead_id")); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
