package entities

import "time"

type MembershipStatus string

const (
	MembershipStatusAdded     MembershipStatus = "added"
	MembershipStatusContacted MembershipStatus = "contacted"
	MembershipStatusConverted MembershipStatus = "converted"
)

// Membership is one campaign_leads join row. The schema cascades its
// deletion with either parent.
type Membership struct {
	MembershipID string
	CampaignID   string
	LeadID       string
	Status       MembershipStatus
	AddedAt      time.Time
}

func IsSupportedMembershipStatus(value MembershipStatus) bool {
	switch value {
	case MembershipStatusAdded, MembershipStatusContacted, MembershipStatusConverted:
		return true
	default:
		return false
	}
}
