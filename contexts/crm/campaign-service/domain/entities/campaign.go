package entities

import (
	"strings"
	"time"
)

type CampaignStatus string
type CampaignType string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"

	CampaignTypeEmail   CampaignType = "email"
	CampaignTypeSocial  CampaignType = "social"
	CampaignTypeContent CampaignType = "content"
	CampaignTypePaid    CampaignType = "paid"
	CampaignTypeEvent   CampaignType = "event"
)

type UserSummary struct {
	UserID string
	Name   string
	Email  string
}

// Metrics is a structured column, not normalized into its own table.
type Metrics struct {
	Impressions *int `json:"impressions,omitempty"`
	Clicks      *int `json:"clicks,omitempty"`
	Conversions *int `json:"conversions,omitempty"`
	Cost        *int `json:"cost,omitempty"`
}

type Campaign struct {
	CampaignID  string
	Name        string
	Description string
	Status      CampaignStatus
	Type        CampaignType
	Budget      *int
	StartDate   *time.Time
	EndDate     *time.Time

	// Stored aggregates. They are independent fields, not derived from
	// campaign_leads at read time, and no write path recomputes them.
	TotalLeads      int
	SuccessfulLeads int
	SuccessRate     int
	Progress        int

	Metrics   Metrics
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Creator *UserSummary
}

func (c Campaign) ValidateBasics() bool {
	return strings.TrimSpace(c.Name) != "" &&
		IsSupportedCampaignStatus(c.Status) &&
		IsSupportedCampaignType(c.Type)
}

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

func IsSupportedCampaignType(value CampaignType) bool {
	switch value {
	case CampaignTypeEmail, CampaignTypeSocial, CampaignTypeContent, CampaignTypePaid, CampaignTypeEvent:
		return true
	default:
		return false
	}
}
