package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UserSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MetricsDTO struct {
	Impressions *int `json:"impressions,omitempty"`
	Clicks      *int `json:"clicks,omitempty"`
	Conversions *int `json:"conversions,omitempty"`
	Cost        *int `json:"cost,omitempty"`
}

type CampaignDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	Budget          *int            `json:"budget,omitempty"`
	StartDate       string          `json:"start_date,omitempty"`
	EndDate         string          `json:"end_date,omitempty"`
	TotalLeads      int             `json:"total_leads"`
	SuccessfulLeads int             `json:"successful_leads"`
	SuccessRate     int             `json:"success_rate"`
	Progress        int             `json:"progress"`
	Metrics         MetricsDTO      `json:"metrics"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	Creator         *UserSummaryDTO `json:"creator,omitempty"`
}

type ListCampaignsRequest struct {
	Page     int
	PageSize int
	Search   string
}

type ListCampaignsResponse struct {
	Items       []CampaignDTO `json:"items"`
	TotalCount  int64         `json:"total_count"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

type GetCampaignResponse struct {
	Campaign *CampaignDTO `json:"campaign"`
}

type CreateCampaignRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	Budget      *int       `json:"budget"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Metrics     MetricsDTO `json:"metrics"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type UpdateCampaignRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Status      *string     `json:"status"`
	Type        *string     `json:"type"`
	Budget      *int        `json:"budget"`
	StartDate   *string     `json:"start_date"`
	EndDate     *string     `json:"end_date"`
	Metrics     *MetricsDTO `json:"metrics"`
}

type UpdateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type MembershipDTO struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	LeadID     string `json:"lead_id"`
	Status     string `json:"status"`
	AddedAt    string `json:"added_at"`
}

type ListMembershipsResponse struct {
	Items []MembershipDTO `json:"items"`
}

type AddLeadRequest struct {
	LeadID string `json:"lead_id"`
}

type AddLeadResponse struct {
	Membership MembershipDTO `json:"membership"`
}

type UpdateMembershipStatusRequest struct {
	Status string `json:"status"`
}
