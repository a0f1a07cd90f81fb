package entities

import (
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusResponded LeadStatus = "responded"
	LeadStatusConverted LeadStatus = "converted"
)

// UserSummary is the denormalized slice of a user that lead rows carry
// after the assigned-user join. The auth subsystem owns the full record.
type UserSummary struct {
	UserID string
	Name   string
	Email  string
}

type Lead struct {
	LeadID          string
	Name            string
	Email           string
	Phone           string
	Company         string
	Status          LeadStatus
	Source          string
	Value           *int
	Notes           string
	Tags            []string
	AssignedTo      string
	CampaignID      string
	LastContactDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	AssignedUser *UserSummary
}

func (l Lead) ValidateBasics() bool {
	return strings.TrimSpace(l.Name) != "" &&
		strings.TrimSpace(l.Email) != "" &&
		IsSupportedLeadStatus(l.Status)
}

// Any status is reachable from any other; the model enforces membership in
// the enumeration, never transitions.
func IsSupportedLeadStatus(value LeadStatus) bool {
	switch value {
	case LeadStatusNew, LeadStatusContacted, LeadStatusResponded, LeadStatusConverted:
		return true
	default:
		return false
	}
}
