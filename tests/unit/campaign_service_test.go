package unit

import (
	"context"
	"errors"
	"testing"

	campaignservice "funnel/contexts/crm/campaign-service"
	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	httptransport "funnel/contexts/crm/campaign-service/transport/http"
	"funnel/internal/shared/events"
)

func newCampaignModule(t *testing.T) campaignservice.Module {
	t.Helper()
	module := campaignservice.NewInMemoryModule(nil, nil)
	module.Store.SetCurrentUser(entities.UserSummary{
		UserID: "user-1",
		Name:   "Ada Alvarez",
		Email:  "ada@example.com",
	})
	return module
}

func TestCampaignOperationsRequireSession(t *testing.T) {
	module := campaignservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.ListCampaignsHandler(context.Background(), httptransport.ListCampaignsRequest{Page: 1, PageSize: 10})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on list, got %v", err)
	}
	_, err = module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "No Session",
		Type: "email",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on create, got %v", err)
	}
}

func TestCampaignCreateSearchScenario(t *testing.T) {
	module := newCampaignModule(t)

	budget := 50000
	created, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name:        "Q4 Push",
		Description: "End-of-year outbound",
		Type:        "email",
		Budget:      &budget,
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if created.Campaign.Status != "draft" {
		t.Fatalf("expected default status draft, got %s", created.Campaign.Status)
	}
	if created.Campaign.Creator == nil || created.Campaign.Creator.ID != "user-1" {
		t.Fatalf("expected creator set from session, got %+v", created.Campaign.Creator)
	}

	if _, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "Spring Social",
		Type: "social",
	}); err != nil {
		t.Fatalf("create second campaign failed: %v", err)
	}

	resp, err := module.Handler.ListCampaignsHandler(context.Background(), httptransport.ListCampaignsRequest{
		Page:     1,
		PageSize: 10,
		Search:   "q4",
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected exactly one match, got %d items / %d total", len(resp.Items), resp.TotalCount)
	}
	if resp.Items[0].Name != "Q4 Push" {
		t.Fatalf("wrong match: %s", resp.Items[0].Name)
	}
	if resp.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", resp.TotalPages)
	}
}

func TestCampaignRejectsUnknownEnumValues(t *testing.T) {
	module := newCampaignModule(t)

	_, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name:   "Bad Type",
		Type:   "billboard",
		Status: "draft",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}

	_, err = module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name:   "Bad Status",
		Type:   "email",
		Status: "archived",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}
}

func TestCampaignCreateTwoDeleteOne(t *testing.T) {
	module := newCampaignModule(t)

	first, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "Keep Me",
		Type: "content",
	})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "Drop Me",
		Type: "paid",
	})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if err := module.Handler.DeleteCampaignHandler(context.Background(), second.Campaign.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := module.Handler.DeleteCampaignHandler(context.Background(), second.Campaign.ID); err != nil {
		t.Fatalf("repeat delete failed: %v", err)
	}

	resp, err := module.Handler.ListCampaignsHandler(context.Background(), httptransport.ListCampaignsRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.TotalCount != 1 || resp.Items[0].ID != first.Campaign.ID {
		t.Fatalf("expected only first campaign to remain: %+v", resp.Items)
	}

	fetched, err := module.Handler.GetCampaignHandler(context.Background(), second.Campaign.ID)
	if err != nil {
		t.Fatalf("get deleted campaign errored: %v", err)
	}
	if fetched.Campaign != nil {
		t.Fatalf("deleted campaign still readable: %+v", fetched.Campaign)
	}
}

func TestCampaignUpdatePatchesMetrics(t *testing.T) {
	module := newCampaignModule(t)

	created, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "Metrics Holder",
		Type: "email",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	impressions := 1200
	clicks := 90
	updated, err := module.Handler.UpdateCampaignHandler(context.Background(), created.Campaign.ID, httptransport.UpdateCampaignRequest{
		Metrics: &httptransport.MetricsDTO{
			Impressions: &impressions,
			Clicks:      &clicks,
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated == nil {
		t.Fatalf("expected updated campaign, got nil")
	}
	if updated.Campaign.Metrics.Impressions == nil || *updated.Campaign.Metrics.Impressions != 1200 {
		t.Fatalf("metrics not patched: %+v", updated.Campaign.Metrics)
	}
	if updated.Campaign.Name != "Metrics Holder" {
		t.Fatalf("untouched field changed: %s", updated.Campaign.Name)
	}
}

func TestCampaignMembershipLifecycle(t *testing.T) {
	module := newCampaignModule(t)

	created, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "Membership Host",
		Type: "event",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	campaignID := created.Campaign.ID

	added, err := module.Handler.AddLeadHandler(context.Background(), campaignID, httptransport.AddLeadRequest{LeadID: "lead-1"})
	if err != nil {
		t.Fatalf("add lead failed: %v", err)
	}
	if added.Membership.Status != "added" {
		t.Fatalf("expected status added, got %s", added.Membership.Status)
	}

	_, err = module.Handler.AddLeadHandler(context.Background(), campaignID, httptransport.AddLeadRequest{LeadID: "lead-1"})
	if !errors.Is(err, domainerrors.ErrLeadAlreadyInCampaign) {
		t.Fatalf("expected duplicate pair rejection, got %v", err)
	}

	err = module.Handler.UpdateMembershipStatusHandler(context.Background(), added.Membership.ID, httptransport.UpdateMembershipStatusRequest{Status: "converted"})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	err = module.Handler.UpdateMembershipStatusHandler(context.Background(), added.Membership.ID, httptransport.UpdateMembershipStatusRequest{Status: "won"})
	if !errors.Is(err, domainerrors.ErrInvalidMembershipStatus) {
		t.Fatalf("expected invalid membership status, got %v", err)
	}

	list, err := module.Handler.ListMembershipsHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("list memberships failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Status != "converted" {
		t.Fatalf("unexpected memberships: %+v", list.Items)
	}

	if err := module.Handler.RemoveLeadHandler(context.Background(), campaignID, "lead-1"); err != nil {
		t.Fatalf("remove lead failed: %v", err)
	}
	if err := module.Handler.RemoveLeadHandler(context.Background(), campaignID, "lead-1"); err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}
}

func TestCampaignAddLeadToMissingCampaign(t *testing.T) {
	module := newCampaignModule(t)

	_, err := module.Handler.AddLeadHandler(context.Background(), "missing-id", httptransport.AddLeadRequest{LeadID: "lead-1"})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected campaign not found, got %v", err)
	}
}

func TestCampaignAggregatesAreNotRecomputed(t *testing.T) {
	module := campaignservice.NewInMemoryModule([]entities.Campaign{
		{
			CampaignID:      "camp-agg",
			Name:            "Aggregates Stay Put",
			Status:          entities.CampaignStatusActive,
			Type:            entities.CampaignTypeEmail,
			TotalLeads:      7,
			SuccessfulLeads: 3,
			SuccessRate:     42,
			Progress:        60,
		},
	}, nil)
	module.Store.SetCurrentUser(entities.UserSummary{UserID: "user-1", Name: "Ada", Email: "ada@example.com"})

	if _, err := module.Handler.AddLeadHandler(context.Background(), "camp-agg", httptransport.AddLeadRequest{LeadID: "lead-9"}); err != nil {
		t.Fatalf("add lead failed: %v", err)
	}

	fetched, err := module.Handler.GetCampaignHandler(context.Background(), "camp-agg")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.Campaign.TotalLeads != 7 || fetched.Campaign.SuccessRate != 42 {
		t.Fatalf("stored aggregates changed: %+v", fetched.Campaign)
	}
}

func TestCampaignMutationsPublishInvalidations(t *testing.T) {
	module := newCampaignModule(t)

	created, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		Name: "Signal Source",
		Type: "email",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.AddLeadHandler(context.Background(), created.Campaign.ID, httptransport.AddLeadRequest{LeadID: "lead-1"}); err != nil {
		t.Fatalf("add lead failed: %v", err)
	}
	if err := module.Handler.DeleteCampaignHandler(context.Background(), created.Campaign.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	recorded := module.Store.Invalidations()
	if len(recorded) != 3 {
		t.Fatalf("expected 3 invalidations, got %d", len(recorded))
	}
	for _, event := range recorded {
		if event.Entity != events.EntityCampaigns {
			t.Fatalf("unexpected entity %q", event.Entity)
		}
	}
}
