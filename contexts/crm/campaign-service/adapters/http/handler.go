package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/campaign-service/application/commands"
	"funnel/contexts/crm/campaign-service/application/queries"
	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	httptransport "funnel/contexts/crm/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign         commands.CreateCampaignUseCase
	UpdateCampaign         commands.UpdateCampaignUseCase
	DeleteCampaign         commands.DeleteCampaignUseCase
	AddLead                commands.AddLeadUseCase
	UpdateMembershipStatus commands.UpdateMembershipStatusUseCase
	RemoveLead             commands.RemoveLeadUseCase
	ListCampaigns          queries.ListCampaignsUseCase
	GetCampaign            queries.GetCampaignUseCase
	ListMemberships        queries.ListMembershipsUseCase
	Logger                 *slog.Logger
}

func (h Handler) ListCampaignsHandler(ctx context.Context, req httptransport.ListCampaignsRequest) (httptransport.ListCampaignsResponse, error) {
	result, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}

	items := make([]httptransport.CampaignDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{
		Items:       items,
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	item, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	if item == nil {
		return httptransport.GetCampaignResponse{}, nil
	}
	dto := mapCampaign(*item)
	return httptransport.GetCampaignResponse{Campaign: &dto}, nil
}

func (h Handler) CreateCampaignHandler(ctx context.Context, req httptransport.CreateCampaignRequest) (httptransport.CreateCampaignResponse, error) {
	startDate, err := parseOptionalTimestamp(req.StartDate)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	endDate, err := parseOptionalTimestamp(req.EndDate)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	result, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Type:        req.Type,
		Budget:      req.Budget,
		StartDate:   startDate,
		EndDate:     endDate,
		Metrics:     mapMetricsDTO(req.Metrics),
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(result)}, nil
}

// UpdateCampaignHandler returns nil when the id matches no row.
func (h Handler) UpdateCampaignHandler(ctx context.Context, campaignID string, req httptransport.UpdateCampaignRequest) (*httptransport.UpdateCampaignResponse, error) {
	cmd := commands.UpdateCampaignCommand{
		CampaignID:  campaignID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Type:        req.Type,
		Budget:      req.Budget,
	}
	if req.StartDate != nil {
		parsed, err := parseOptionalTimestamp(*req.StartDate)
		if err != nil {
			return nil, domainerrors.ErrInvalidCampaignInput
		}
		cmd.StartDate = parsed
	}
	if req.EndDate != nil {
		parsed, err := parseOptionalTimestamp(*req.EndDate)
		if err != nil {
			return nil, domainerrors.ErrInvalidCampaignInput
		}
		cmd.EndDate = parsed
	}
	if req.Metrics != nil {
		metrics := mapMetricsDTO(*req.Metrics)
		cmd.Metrics = &metrics
	}

	result, err := h.UpdateCampaign.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &httptransport.UpdateCampaignResponse{Campaign: mapCampaign(*result)}, nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, campaignID string) error {
	return h.DeleteCampaign.Execute(ctx, campaignID)
}

func (h Handler) ListMembershipsHandler(ctx context.Context, campaignID string) (httptransport.ListMembershipsResponse, error) {
	items, err := h.ListMemberships.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.ListMembershipsResponse{}, err
	}

	dtos := make([]httptransport.MembershipDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, mapMembership(item))
	}
	return httptransport.ListMembershipsResponse{Items: dtos}, nil
}

func (h Handler) AddLeadHandler(ctx context.Context, campaignID string, req httptransport.AddLeadRequest) (httptransport.AddLeadResponse, error) {
	membership, err := h.AddLead.Execute(ctx, commands.AddLeadCommand{
		CampaignID: campaignID,
		LeadID:     req.LeadID,
	})
	if err != nil {
		return httptransport.AddLeadResponse{}, err
	}
	return httptransport.AddLeadResponse{Membership: mapMembership(membership)}, nil
}

func (h Handler) UpdateMembershipStatusHandler(ctx context.Context, membershipID string, req httptransport.UpdateMembershipStatusRequest) error {
	return h.UpdateMembershipStatus.Execute(ctx, membershipID, req.Status)
}

func (h Handler) RemoveLeadHandler(ctx context.Context, campaignID string, leadID string) error {
	return h.RemoveLead.Execute(ctx, campaignID, leadID)
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	dto := httptransport.CampaignDTO{
		ID:              item.CampaignID,
		Name:            item.Name,
		Description:     item.Description,
		Status:          string(item.Status),
		Type:            string(item.Type),
		Budget:          item.Budget,
		TotalLeads:      item.TotalLeads,
		SuccessfulLeads: item.SuccessfulLeads,
		SuccessRate:     item.SuccessRate,
		Progress:        item.Progress,
		Metrics:         mapMetrics(item.Metrics),
		CreatedBy:       item.CreatedBy,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.Format(time.RFC3339),
	}
	if item.StartDate != nil {
		dto.StartDate = item.StartDate.Format(time.RFC3339)
	}
	if item.EndDate != nil {
		dto.EndDate = item.EndDate.Format(time.RFC3339)
	}
	if item.Creator != nil {
		dto.Creator = &httptransport.UserSummaryDTO{
			ID:    item.Creator.UserID,
			Name:  item.Creator.Name,
			Email: item.Creator.Email,
		}
	}
	return dto
}

func mapMembership(item entities.Membership) httptransport.MembershipDTO {
	return httptransport.MembershipDTO{
		ID:         item.MembershipID,
		CampaignID: item.CampaignID,
		LeadID:     item.LeadID,
		Status:     string(item.Status),
		AddedAt:    item.AddedAt.Format(time.RFC3339),
	}
}

func mapMetrics(item entities.Metrics) httptransport.MetricsDTO {
	return httptransport.MetricsDTO{
		Impressions: item.Impressions,
		Clicks:      item.Clicks,
		Conversions: item.Conversions,
		Cost:        item.Cost,
	}
}

func mapMetricsDTO(dto httptransport.MetricsDTO) entities.Metrics {
	return entities.Metrics{
		Impressions: dto.Impressions,
		Clicks:      dto.Clicks,
		Conversions: dto.Conversions,
		Cost:        dto.Cost,
	}
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
