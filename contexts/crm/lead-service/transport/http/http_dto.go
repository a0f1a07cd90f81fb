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

type LeadDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Company         string          `json:"company,omitempty"`
	Status          string          `json:"status"`
	Source          string          `json:"source,omitempty"`
	Value           *int            `json:"value,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Tags            []string        `json:"tags"`
	AssignedTo      string          `json:"assigned_to,omitempty"`
	CampaignID      string          `json:"campaign_id,omitempty"`
	LastContactDate string          `json:"last_contact_date,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	AssignedUser    *UserSummaryDTO `json:"assigned_user,omitempty"`
}

type ListLeadsRequest struct {
	Page     int
	PageSize int
	Search   string
}

type ListLeadsResponse struct {
	Items       []LeadDTO `json:"items"`
	TotalCount  int64     `json:"total_count"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
}

type GetLeadResponse struct {
	Lead *LeadDTO `json:"lead"`
}

type CreateLeadRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Company         string   `json:"company"`
	Status          string   `json:"status"`
	Source          string   `json:"source"`
	Value           *int     `json:"value"`
	Notes           string   `json:"notes"`
	Tags            []string `json:"tags"`
	CampaignID      string   `json:"campaign_id"`
	LastContactDate string   `json:"last_contact_date"`
}

type CreateLeadResponse struct {
	Lead LeadDTO `json:"lead"`
}

type UpdateLeadRequest struct {
	Name            *string   `json:"name"`
	Email           *string   `json:"email"`
	Phone           *string   `json:"phone"`
	Company         *string   `json:"company"`
	Status          *string   `json:"status"`
	Source          *string   `json:"source"`
	Value           *int      `json:"value"`
	Notes           *string   `json:"notes"`
	Tags            *[]string `json:"tags"`
	LastContactDate *string   `json:"last_contact_date"`
}

type UpdateLeadResponse struct {
	Lead LeadDTO `json:"lead"`
}
