package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	campaignservice "funnel/contexts/crm/campaign-service"
	campaignentities "funnel/contexts/crm/campaign-service/domain/entities"
	leadservice "funnel/contexts/crm/lead-service"
	leadentities "funnel/contexts/crm/lead-service/domain/entities"
	leadhttp "funnel/contexts/crm/lead-service/transport/http"
)

type testEnv struct {
	ts        *httptest.Server
	leads     leadservice.Module
	campaigns campaignservice.Module
}

func newTestServer(t *testing.T) testEnv {
	t.Helper()
	leads := leadservice.NewInMemoryModule(nil, nil)
	campaigns := campaignservice.NewInMemoryModule(nil, nil)

	server := New(leads, campaigns, nil, ":0", "Authorization")
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return testEnv{ts: ts, leads: leads, campaigns: campaigns}
}

func (e testEnv) signIn() {
	e.leads.Store.SetCurrentUser(leadentities.UserSummary{
		UserID: "user-1",
		Name:   "Ada Alvarez",
		Email:  "ada@example.com",
	})
	e.campaigns.Store.SetCurrentUser(campaignentities.UserSummary{
		UserID: "user-1",
		Name:   "Ada Alvarez",
		Email:  "ada@example.com",
	})
}

func doJSON(t *testing.T, method string, url string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestLeadRoutesRejectAnonymousCallers(t *testing.T) {
	env := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/leads", nil},
		{http.MethodPost, "/api/leads", leadhttp.CreateLeadRequest{Name: "X", Email: "x@example.com"}},
		{http.MethodGet, "/api/leads/some-id", nil},
		{http.MethodPatch, "/api/leads/some-id", leadhttp.UpdateLeadRequest{}},
		{http.MethodDelete, "/api/leads/some-id", nil},
	} {
		resp := doJSON(t, route.method, env.ts.URL+route.path, route.body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestLeadCreateAndListOverHTTP(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/api/leads", leadhttp.CreateLeadRequest{
		Name:  "Grace Okafor",
		Email: "grace@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody[leadhttp.CreateLeadResponse](t, resp)
	if created.Lead.ID == "" {
		t.Fatalf("missing lead id in response")
	}

	resp = doJSON(t, http.MethodGet, env.ts.URL+"/api/leads?page=1&page_size=10", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	listed := decodeBody[leadhttp.ListLeadsResponse](t, resp)
	if listed.TotalCount != 1 || len(listed.Items) != 1 {
		t.Fatalf("unexpected list payload: %+v", listed)
	}
}

func TestLeadListRejectsMalformedPagination(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodGet, env.ts.URL+"/api/leads?page=abc", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer page, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, env.ts.URL+"/api/leads?page=0&page_size=10", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero page, got %d", resp.StatusCode)
	}
}

func TestLeadGetUnknownIDReturns404(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodGet, env.ts.URL+"/api/leads/not-a-row", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, env.ts.URL+"/api/leads/not-a-row", leadhttp.UpdateLeadRequest{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on patch, got %d", resp.StatusCode)
	}
}

func TestLeadDeleteReturns204(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	resp := doJSON(t, http.MethodPost, env.ts.URL+"/api/leads", leadhttp.CreateLeadRequest{
		Name:  "Short Lived",
		Email: "short@example.com",
	})
	created := decodeBody[leadhttp.CreateLeadResponse](t, resp)

	resp = doJSON(t, http.MethodDelete, env.ts.URL+"/api/leads/"+created.Lead.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, env.ts.URL+"/api/leads/"+created.Lead.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on repeat delete, got %d", resp.StatusCode)
	}
}

func TestLeadCreateRejectsMalformedJSON(t *testing.T) {
	env := newTestServer(t)
	env.signIn()

	req, err := http.NewRequest(http.MethodPost, env.ts.URL+"/api/leads", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
