package events

import "time"

// Invalidation tells list-view consumers that cached pages for an entity
// collection are stale and must be re-fetched, not patched in place.
type Invalidation struct {
	Entity     string    `json:"entity"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EntityLeads     = "leads"
	EntityCampaigns = "campaigns"
)
