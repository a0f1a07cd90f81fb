package httpserver

import (
	"net/http"
	"testing"

	campaignhttp "funnel/contexts/crm/campaign-service/transport/http"
)

func TestCampaignRoutesRejectAnonymousCallers(t *testing.T) {
	env := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/campaigns", nil},
		{http.MethodPost, "/api/campaigns", campaignhttp.CreateCampaignRequest{Name: "X", Type: "email"}},
		{http.MethodGet, "/api/campaigns/some-id", nil},
		{http.MethodPatch, "/api/campaigns/some-id", campaignhttp.UpdateCampaignRequest{}},
		{http.MethodDelete, "/api/campaigns/some-id", nil},
		{http.MethodGet, "/api/campaigns/some-id/leads", nil},
		{http.MethodPost, "/api/campaigns/some-id/leads", campaignhttp.AddLeadRequest{LeadID: "lead-1"}},
	} {
		resp := doJSON(t, route.method, env.ts.URL+route.path, route.body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestCampaignCreateAndGetOverHTTP(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/api/campaigns", campaignhttp.CreateCampaignRequest{
		Name: "Q4 Push",
		Type: "email",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody[campaignhttp.CreateCampaignResponse](t, resp)
	if created.Campaign.Status != "draft" {
		t.Fatalf("expected draft status, got %s", created.Campaign.Status)
	}

	resp = doJSON(t, http.MethodGet, env.ts.URL+"/api/campaigns/"+created.Campaign.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	fetched := decodeBody[campaignhttp.GetCampaignResponse](t, resp)
	if fetched.Campaign == nil || fetched.Campaign.Name != "Q4 Push" {
		t.Fatalf("unexpected campaign payload: %+v", fetched.Campaign)
	}
}

func TestCampaignCreateRejectsUnknownType(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/api/campaigns", campaignhttp.CreateCampaignRequest{
		Name: "Bad Type",
		Type: "billboard",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCampaignGetUnknownIDReturns404(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodGet, env.ts.URL+"/api/campaigns/not-a-row", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCampaignMembershipConflictReturns409(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/api/campaigns", campaignhttp.CreateCampaignRequest{
		Name: "Membership Host",
		Type: "event",
	})
	created := decodeBody[campaignhttp.CreateCampaignResponse](t, resp)
	base := env.ts.URL + "/api/campaigns/" + created.Campaign.ID + "/leads"

	resp = doJSON(t, http.MethodPost, base, campaignhttp.AddLeadRequest{LeadID: "lead-1"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on first add, got %d", resp.StatusCode)
	}
	added := decodeBody[campaignhttp.AddLeadResponse](t, resp)

	resp = doJSON(t, http.MethodPost, base, campaignhttp.AddLeadRequest{LeadID: "lead-1"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate add, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, base+"/"+added.Membership.ID, campaignhttp.UpdateMembershipStatusRequest{Status: "contacted"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on status update, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, base+"/"+added.Membership.ID, campaignhttp.UpdateMembershipStatusRequest{Status: "won"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on unknown status, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, base+"/lead-1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on remove, got %d", resp.StatusCode)
	}
}
