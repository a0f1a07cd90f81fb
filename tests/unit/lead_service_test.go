package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	leadservice "funnel/contexts/crm/lead-service"
	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	httptransport "funnel/contexts/crm/lead-service/transport/http"
	"funnel/internal/shared/events"
)

func newLeadModule(t *testing.T) leadservice.Module {
	t.Helper()
	module := leadservice.NewInMemoryModule(nil, nil)
	module.Store.SetCurrentUser(entities.UserSummary{
		UserID: "user-1",
		Name:   "Ada Alvarez",
		Email:  "ada@example.com",
	})
	return module
}

func seedLeads(t *testing.T, module leadservice.Module, count int) []string {
	t.Helper()
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		resp, err := module.Handler.CreateLeadHandler(context.Background(), httptransport.CreateLeadRequest{
			Name:  fmt.Sprintf("Lead %02d", i),
			Email: fmt.Sprintf("lead%02d@example.com", i),
		})
		if err != nil {
			t.Fatalf("seed lead %d failed: %v", i, err)
		}
		ids = append(ids, resp.Lead.ID)
	}
	return ids
}

func TestLeadOperationsRequireSession(t *testing.T) {
	module := leadservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{Page: 1, PageSize: 10})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on list, got %v", err)
	}

	_, err = module.Handler.CreateLeadHandler(context.Background(), httptransport.CreateLeadRequest{
		Name:  "No Session",
		Email: "no-session@example.com",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on create, got %v", err)
	}

	resp, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{Page: 1, PageSize: 10})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after rejected create, got %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("rejected create must not write rows, got %d", len(resp.Items))
	}
}

func TestLeadCreateThenGetRoundTrip(t *testing.T) {
	module := newLeadModule(t)

	value := 4200
	created, err := module.Handler.CreateLeadHandler(context.Background(), httptransport.CreateLeadRequest{
		Name:    "Grace Okafor",
		Email:   "grace@example.com",
		Company: "Okafor Ltd",
		Value:   &value,
		Tags:    []string{"inbound", "priority"},
	})
	if err != nil {
		t.Fatalf("create lead failed: %v", err)
	}
	if created.Lead.Status != "new" {
		t.Fatalf("expected default status new, got %s", created.Lead.Status)
	}
	if created.Lead.AssignedUser == nil || created.Lead.AssignedUser.ID != "user-1" {
		t.Fatalf("expected lead assigned to current user, got %+v", created.Lead.AssignedUser)
	}

	fetched, err := module.Handler.GetLeadHandler(context.Background(), created.Lead.ID)
	if err != nil {
		t.Fatalf("get lead failed: %v", err)
	}
	if fetched.Lead == nil {
		t.Fatalf("expected lead, got nil")
	}
	if fetched.Lead.Company != "Okafor Ltd" || len(fetched.Lead.Tags) != 2 {
		t.Fatalf("round trip lost fields: %+v", fetched.Lead)
	}
	if fetched.Lead.Value == nil || *fetched.Lead.Value != 4200 {
		t.Fatalf("round trip lost value: %+v", fetched.Lead.Value)
	}
}

func TestLeadGetMissingReturnsNil(t *testing.T) {
	module := newLeadModule(t)

	resp, err := module.Handler.GetLeadHandler(context.Background(), "missing-id")
	if err != nil {
		t.Fatalf("get missing lead errored: %v", err)
	}
	if resp.Lead != nil {
		t.Fatalf("expected nil lead for missing id, got %+v", resp.Lead)
	}
}

func TestLeadListPagination(t *testing.T) {
	module := newLeadModule(t)
	seedLeads(t, module, 25)

	resp, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list leads failed: %v", err)
	}
	if resp.TotalCount != 25 {
		t.Fatalf("expected 25 total, got %d", resp.TotalCount)
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.CurrentPage != 2 {
		t.Fatalf("expected current page 2, got %d", resp.CurrentPage)
	}
	if len(resp.Items) != 10 {
		t.Fatalf("expected 10 rows on page 2, got %d", len(resp.Items))
	}

	last, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("list last page failed: %v", err)
	}
	if len(last.Items) != 5 {
		t.Fatalf("expected 5 rows on last page, got %d", len(last.Items))
	}

	beyond, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("list beyond range failed: %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Fatalf("expected empty page beyond range, got %d rows", len(beyond.Items))
	}
}

func TestLeadListRejectsNonPositivePage(t *testing.T) {
	module := newLeadModule(t)

	for _, req := range []httptransport.ListLeadsRequest{
		{Page: 0, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: -3, PageSize: 10},
	} {
		if _, err := module.Handler.ListLeadsHandler(context.Background(), req); !errors.Is(err, domainerrors.ErrInvalidPage) {
			t.Fatalf("expected invalid page for %+v, got %v", req, err)
		}
	}
}

func TestLeadListSearchFiltersByNameOnly(t *testing.T) {
	module := newLeadModule(t)

	for _, seed := range []httptransport.CreateLeadRequest{
		{Name: "Acme Rocket", Email: "rocket@acme.com"},
		{Name: "Beta Forge", Email: "acme@betaforge.com"},
		{Name: "acme skunkworks", Email: "skunk@example.com"},
	} {
		if _, err := module.Handler.CreateLeadHandler(context.Background(), seed); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	resp, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{
		Page:     1,
		PageSize: 10,
		Search:   "ACME",
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	// Beta Forge matches in email only; search covers the name column.
	if resp.TotalCount != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 name matches, got %d items / %d total", len(resp.Items), resp.TotalCount)
	}
	for _, item := range resp.Items {
		if item.Name == "Beta Forge" {
			t.Fatalf("email-only match leaked into results")
		}
	}
}

func TestLeadUpdatePatchesOnlyProvidedFields(t *testing.T) {
	module := newLeadModule(t)

	created, err := module.Handler.CreateLeadHandler(context.Background(), httptransport.CreateLeadRequest{
		Name:    "Patch Target",
		Email:   "patch@example.com",
		Company: "Before Inc",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	status := "contacted"
	updated, err := module.Handler.UpdateLeadHandler(context.Background(), created.Lead.ID, httptransport.UpdateLeadRequest{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated == nil {
		t.Fatalf("expected updated lead, got nil")
	}
	if updated.Lead.Status != "contacted" {
		t.Fatalf("status not patched: %s", updated.Lead.Status)
	}
	if updated.Lead.Company != "Before Inc" {
		t.Fatalf("untouched field changed: %s", updated.Lead.Company)
	}
}

func TestLeadUpdateMissingIDReturnsNil(t *testing.T) {
	module := newLeadModule(t)

	name := "Ghost"
	resp, err := module.Handler.UpdateLeadHandler(context.Background(), "missing-id", httptransport.UpdateLeadRequest{Name: &name})
	if err != nil {
		t.Fatalf("update missing id errored: %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil result for missing id, got %+v", resp)
	}
}

func TestLeadDeleteIsIdempotent(t *testing.T) {
	module := newLeadModule(t)
	ids := seedLeads(t, module, 2)

	if err := module.Handler.DeleteLeadHandler(context.Background(), ids[0]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := module.Handler.DeleteLeadHandler(context.Background(), ids[0]); err != nil {
		t.Fatalf("repeat delete failed: %v", err)
	}

	resp, err := module.Handler.ListLeadsHandler(context.Background(), httptransport.ListLeadsRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.TotalCount != 1 {
		t.Fatalf("expected 1 remaining lead, got %d", resp.TotalCount)
	}
}

func TestLeadMutationsPublishInvalidations(t *testing.T) {
	module := newLeadModule(t)

	created, err := module.Handler.CreateLeadHandler(context.Background(), httptransport.CreateLeadRequest{
		Name:  "Signal Source",
		Email: "signal@example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	notes := "called twice"
	if _, err := module.Handler.UpdateLeadHandler(context.Background(), created.Lead.ID, httptransport.UpdateLeadRequest{Notes: &notes}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := module.Handler.DeleteLeadHandler(context.Background(), created.Lead.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	recorded := module.Store.Invalidations()
	if len(recorded) != 3 {
		t.Fatalf("expected 3 invalidations, got %d", len(recorded))
	}
	for _, event := range recorded {
		if event.Entity != events.EntityLeads {
			t.Fatalf("unexpected entity %q", event.Entity)
		}
		if event.OccurredAt.IsZero() || event.OccurredAt.After(time.Now().Add(time.Minute)) {
			t.Fatalf("implausible invalidation timestamp %v", event.OccurredAt)
		}
	}
}
