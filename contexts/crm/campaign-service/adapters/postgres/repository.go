package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/campaign-service/domain/entities"
	domainerrors "funnel/contexts/crm/campaign-service/domain/errors"
	"funnel/contexts/crm/campaign-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	updates, err := campaignUpdatesFromEntity(campaign)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("id = ?", strings.TrimSpace(campaign.CampaignID)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) DeleteCampaign(ctx context.Context, campaignID string) error {
	// No rows affected is fine: delete is idempotent, and the schema's
	// cascade removes campaign_leads rows alongside the campaign.
	return r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(campaignID)).
		Delete(&campaignModel{}).
		Error
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var rows []campaignJoinRow
	err := r.db.WithContext(ctx).
		Table("campaigns").
		Select(campaignJoinSelect).
		Joins("LEFT JOIN users ON users.id = campaigns.created_by").
		Where("campaigns.id = ?", strings.TrimSpace(campaignID)).
		Limit(1).
		Scan(&rows).
		Error
	if err != nil {
		return entities.Campaign{}, err
	}
	if len(rows) == 0 {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return rows[0].toEntity()
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter, page ports.PageRequest) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).
		Table("campaigns").
		Select(campaignJoinSelect).
		Joins("LEFT JOIN users ON users.id = campaigns.created_by")
	tx = applyCampaignFilter(tx, filter)

	var rows []campaignJoinRow
	if err := tx.Order("campaigns.created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) CountCampaigns(ctx context.Context, filter ports.CampaignFilter) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	tx = applyCampaignFilter(tx, filter)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository) AddMembership(ctx context.Context, membership entities.Membership) error {
	row := membershipModelFromEntity(membership)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrLeadAlreadyInCampaign
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateMembershipStatus(ctx context.Context, membershipID string, status entities.MembershipStatus) error {
	result := r.db.WithContext(ctx).
		Model(&membershipModel{}).
		Where("id = ?", strings.TrimSpace(membershipID)).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMembershipNotFound
	}
	return nil
}

func (r *Repository) RemoveMembership(ctx context.Context, campaignID string, leadID string) error {
	return r.db.WithContext(ctx).
		Where("campaign_id = ? AND lead_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(leadID)).
		Delete(&membershipModel{}).
		Error
}

func (r *Repository) ListMemberships(ctx context.Context, campaignID string) ([]entities.Membership, error) {
	var rows []membershipModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("added_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Membership, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func applyCampaignFilter(tx *gorm.DB, filter ports.CampaignFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("campaigns.name ILIKE ?", "%"+search+"%")
	}
	return tx
}

const campaignJoinSelect = "campaigns.*, " +
	"users.id AS creator_id, " +
	"users.name AS creator_name, " +
	"users.email AS creator_email"

type campaignModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Description     *string    `gorm:"column:description"`
	Status          string     `gorm:"column:status"`
	Type            string     `gorm:"column:type"`
	Budget          *int       `gorm:"column:budget"`
	StartDate       *time.Time `gorm:"column:start_date"`
	EndDate         *time.Time `gorm:"column:end_date"`
	TotalLeads      int        `gorm:"column:total_leads"`
	SuccessfulLeads int        `gorm:"column:successful_leads"`
	SuccessRate     int        `gorm:"column:success_rate"`
	Progress        int        `gorm:"column:progress"`
	Metrics         []byte     `gorm:"column:metrics;type:jsonb"`
	CreatedBy       *string    `gorm:"column:created_by"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

type campaignJoinRow struct {
	campaignModel
	CreatorID    *string `gorm:"column:creator_id"`
	CreatorName  *string `gorm:"column:creator_name"`
	CreatorEmail *string `gorm:"column:creator_email"`
}

type membershipModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	CampaignID string    `gorm:"column:campaign_id"`
	LeadID     string    `gorm:"column:lead_id"`
	Status     string    `gorm:"column:status"`
	AddedAt    time.Time `gorm:"column:added_at"`
}

func (membershipModel) TableName() string {
	return "campaign_leads"
}

func campaignModelFromEntity(item entities.Campaign) (campaignModel, error) {
	metrics, err := json.Marshal(item.Metrics)
	if err != nil {
		return campaignModel{}, err
	}
	return campaignModel{
		ID:              strings.TrimSpace(item.CampaignID),
		Name:            strings.TrimSpace(item.Name),
		Description:     optionalString(item.Description),
		Status:          string(item.Status),
		Type:            string(item.Type),
		Budget:          item.Budget,
		StartDate:       normalizeOptionalTime(item.StartDate),
		EndDate:         normalizeOptionalTime(item.EndDate),
		TotalLeads:      item.TotalLeads,
		SuccessfulLeads: item.SuccessfulLeads,
		SuccessRate:     item.SuccessRate,
		Progress:        item.Progress,
		Metrics:         metrics,
		CreatedBy:       optionalString(item.CreatedBy),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func campaignUpdatesFromEntity(item entities.Campaign) (map[string]any, error) {
	row, err := campaignModelFromEntity(item)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"name":             row.Name,
		"description":      row.Description,
		"status":           row.Status,
		"type":             row.Type,
		"budget":           row.Budget,
		"start_date":       row.StartDate,
		"end_date":         row.EndDate,
		"total_leads":      row.TotalLeads,
		"successful_leads": row.SuccessfulLeads,
		"success_rate":     row.SuccessRate,
		"progress":         row.Progress,
		"metrics":          row.Metrics,
		"updated_at":       row.UpdatedAt,
	}, nil
}

func (m campaignJoinRow) toEntity() (entities.Campaign, error) {
	var metrics entities.Metrics
	if len(m.Metrics) > 0 {
		if err := json.Unmarshal(m.Metrics, &metrics); err != nil {
			return entities.Campaign{}, err
		}
	}

	item := entities.Campaign{
		CampaignID:      m.ID,
		Name:            m.Name,
		Description:     stringOrEmpty(m.Description),
		Status:          entities.CampaignStatus(m.Status),
		Type:            entities.CampaignType(m.Type),
		Budget:          m.Budget,
		StartDate:       normalizeOptionalTime(m.StartDate),
		EndDate:         normalizeOptionalTime(m.EndDate),
		TotalLeads:      m.TotalLeads,
		SuccessfulLeads: m.SuccessfulLeads,
		SuccessRate:     m.SuccessRate,
		Progress:        m.Progress,
		Metrics:         metrics,
		CreatedBy:       stringOrEmpty(m.CreatedBy),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
	if m.CreatorID != nil {
		item.Creator = &entities.UserSummary{
			UserID: *m.CreatorID,
			Name:   stringOrEmpty(m.CreatorName),
			Email:  stringOrEmpty(m.CreatorEmail),
		}
	}
	return item, nil
}

func membershipModelFromEntity(item entities.Membership) membershipModel {
	return membershipModel{
		ID:         strings.TrimSpace(item.MembershipID),
		CampaignID: strings.TrimSpace(item.CampaignID),
		LeadID:     strings.TrimSpace(item.LeadID),
		Status:     string(item.Status),
		AddedAt:    item.AddedAt.UTC(),
	}
}

func (m membershipModel) toEntity() entities.Membership {
	return entities.Membership{
		MembershipID: m.ID,
		CampaignID:   m.CampaignID,
		LeadID:       m.LeadID,
		Status:       entities.MembershipStatus(m.Status),
		AddedAt:      m.AddedAt.UTC(),
	}
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
