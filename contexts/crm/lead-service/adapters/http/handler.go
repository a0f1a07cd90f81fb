package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/lead-service/application/commands"
	"funnel/contexts/crm/lead-service/application/queries"
	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	httptransport "funnel/contexts/crm/lead-service/transport/http"
)

type Handler struct {
	CreateLead commands.CreateLeadUseCase
	UpdateLead commands.UpdateLeadUseCase
	DeleteLead commands.DeleteLeadUseCase
	ListLeads  queries.ListLeadsUseCase
	GetLead    queries.GetLeadUseCase
	Logger     *slog.Logger
}

func (h Handler) ListLeadsHandler(ctx context.Context, req httptransport.ListLeadsRequest) (httptransport.ListLeadsResponse, error) {
	result, err := h.ListLeads.Execute(ctx, queries.ListLeadsQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		return httptransport.ListLeadsResponse{}, err
	}

	items := make([]httptransport.LeadDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, mapLead(item))
	}
	return httptransport.ListLeadsResponse{
		Items:       items,
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	}, nil
}

func (h Handler) GetLeadHandler(ctx context.Context, leadID string) (httptransport.GetLeadResponse, error) {
	item, err := h.GetLead.Execute(ctx, leadID)
	if err != nil {
		return httptransport.GetLeadResponse{}, err
	}
	if item == nil {
		return httptransport.GetLeadResponse{}, nil
	}
	dto := mapLead(*item)
	return httptransport.GetLeadResponse{Lead: &dto}, nil
}

func (h Handler) CreateLeadHandler(ctx context.Context, req httptransport.CreateLeadRequest) (httptransport.CreateLeadResponse, error) {
	lastContact, err := parseOptionalTimestamp(req.LastContactDate)
	if err != nil {
		return httptransport.CreateLeadResponse{}, domainerrors.ErrInvalidLeadInput
	}
	result, err := h.CreateLead.Execute(ctx, commands.CreateLeadCommand{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Status:          req.Status,
		Source:          req.Source,
		Value:           req.Value,
		Notes:           req.Notes,
		Tags:            append([]string(nil), req.Tags...),
		CampaignID:      req.CampaignID,
		LastContactDate: lastContact,
	})
	if err != nil {
		return httptransport.CreateLeadResponse{}, err
	}
	return httptransport.CreateLeadResponse{Lead: mapLead(result)}, nil
}

// UpdateLeadHandler returns nil when the id matches no row.
func (h Handler) UpdateLeadHandler(ctx context.Context, leadID string, req httptransport.UpdateLeadRequest) (*httptransport.UpdateLeadResponse, error) {
	var lastContact *time.Time
	if req.LastContactDate != nil {
		parsed, err := parseOptionalTimestamp(*req.LastContactDate)
		if err != nil {
			return nil, domainerrors.ErrInvalidLeadInput
		}
		lastContact = parsed
	}
	result, err := h.UpdateLead.Execute(ctx, commands.UpdateLeadCommand{
		LeadID:          leadID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Status:          req.Status,
		Source:          req.Source,
		Value:           req.Value,
		Notes:           req.Notes,
		Tags:            req.Tags,
		LastContactDate: lastContact,
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &httptransport.UpdateLeadResponse{Lead: mapLead(*result)}, nil
}

func (h Handler) DeleteLeadHandler(ctx context.Context, leadID string) error {
	return h.DeleteLead.Execute(ctx, leadID)
}

func mapLead(item entities.Lead) httptransport.LeadDTO {
	dto := httptransport.LeadDTO{
		ID:         item.LeadID,
		Name:       item.Name,
		Email:      item.Email,
		Phone:      item.Phone,
		Company:    item.Company,
		Status:     string(item.Status),
		Source:     item.Source,
		Value:      item.Value,
		Notes:      item.Notes,
		Tags:       append([]string{}, item.Tags...),
		AssignedTo: item.AssignedTo,
		CampaignID: item.CampaignID,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  item.UpdatedAt.Format(time.RFC3339),
	}
	if item.LastContactDate != nil {
		dto.LastContactDate = item.LastContactDate.Format(time.RFC3339)
	}
	if item.AssignedUser != nil {
		dto.AssignedUser = &httptransport.UserSummaryDTO{
			ID:    item.AssignedUser.UserID,
			Name:  item.AssignedUser.Name,
			Email: item.AssignedUser.Email,
		}
	}
	return dto
}

func parseOptionalTimestamp(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, err
	}
	normalized := parsed.UTC()
	return &normalized, nil
}
