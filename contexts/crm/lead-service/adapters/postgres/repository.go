package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/crm/lead-service/domain/entities"
	domainerrors "funnel/contexts/crm/lead-service/domain/errors"
	"funnel/contexts/crm/lead-service/ports"

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

func (r *Repository) CreateLead(ctx context.Context, lead entities.Lead) error {
	row, err := leadModelFromEntity(lead)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidLeadInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateLead(ctx context.Context, lead entities.Lead) error {
	updates, err := leadUpdatesFromEntity(lead)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("id = ?", strings.TrimSpace(lead.LeadID)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrLeadNotFound
	}
	return nil
}

func (r *Repository) DeleteLead(ctx context.Context, leadID string) error {
	// No rows affected is fine: delete is idempotent, and the schema's
	// cascade removes campaign_leads rows alongside the lead.
	return r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(leadID)).
		Delete(&leadModel{}).
		Error
}

func (r *Repository) GetLead(ctx context.Context, leadID string) (entities.Lead, error) {
	var rows []leadJoinRow
	err := r.db.WithContext(ctx).
		Table("leads").
		Select(leadJoinSelect).
		Joins("LEFT JOIN users ON users.id = leads.assigned_to").
		Where("leads.id = ?", strings.TrimSpace(leadID)).
		Limit(1).
		Scan(&rows).
		Error
	if err != nil {
		return entities.Lead{}, err
	}
	if len(rows) == 0 {
		return entities.Lead{}, domainerrors.ErrLeadNotFound
	}
	return rows[0].toEntity()
}

func (r *Repository) ListLeads(ctx context.Context, filter ports.LeadFilter, page ports.PageRequest) ([]entities.Lead, error) {
	tx := r.db.WithContext(ctx).
		Table("leads").
		Select(leadJoinSelect).
		Joins("LEFT JOIN users ON users.id = leads.assigned_to")
	tx = applyLeadFilter(tx, filter)

	var rows []leadJoinRow
	if err := tx.Order("leads.created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Lead, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) CountLeads(ctx context.Context, filter ports.LeadFilter) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&leadModel{})
	tx = applyLeadFilter(tx, filter)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyLeadFilter(tx *gorm.DB, filter ports.LeadFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("leads.name ILIKE ?", "%"+search+"%")
	}
	return tx
}

const leadJoinSelect = "leads.*, " +
	"users.id AS assigned_user_id, " +
	"users.name AS assigned_user_name, " +
	"users.email AS assigned_user_email"

type leadModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Email           string     `gorm:"column:email"`
	Phone           *string    `gorm:"column:phone"`
	Company         *string    `gorm:"column:company"`
	Status          string     `gorm:"column:status"`
	Source          *string    `gorm:"column:source"`
	Value           *int       `gorm:"column:value"`
	Notes           *string    `gorm:"column:notes"`
	Tags            []byte     `gorm:"column:tags;type:jsonb"`
	AssignedTo      *string    `gorm:"column:assigned_to"`
	CampaignID      *string    `gorm:"column:campaign_id"`
	LastContactDate *time.Time `gorm:"column:last_contact_date"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (leadModel) TableName() string {
	return "leads"
}

type leadJoinRow struct {
	leadModel
	AssignedUserID    *string `gorm:"column:assigned_user_id"`
	AssignedUserName  *string `gorm:"column:assigned_user_name"`
	AssignedUserEmail *string `gorm:"column:assigned_user_email"`
}

func leadModelFromEntity(item entities.Lead) (leadModel, error) {
	tags, err := json.Marshal(copyOrEmpty(item.Tags))
	if err != nil {
		return leadModel{}, err
	}
	return leadModel{
		ID:              strings.TrimSpace(item.LeadID),
		Name:            strings.TrimSpace(item.Name),
		Email:           strings.TrimSpace(item.Email),
		Phone:           optionalString(item.Phone),
		Company:         optionalString(item.Company),
		Status:          string(item.Status),
		Source:          optionalString(item.Source),
		Value:           item.Value,
		Notes:           optionalString(item.Notes),
		Tags:            tags,
		AssignedTo:      optionalString(item.AssignedTo),
		CampaignID:      optionalString(item.CampaignID),
		LastContactDate: normalizeOptionalTime(item.LastContactDate),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func leadUpdatesFromEntity(item entities.Lead) (map[string]any, error) {
	row, err := leadModelFromEntity(item)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"name":              row.Name,
		"email":             row.Email,
		"phone":             row.Phone,
		"company":           row.Company,
		"status":            row.Status,
		"source":            row.Source,
		"value":             row.Value,
		"notes":             row.Notes,
		"tags":              row.Tags,
		"assigned_to":       row.AssignedTo,
		"campaign_id":       row.CampaignID,
		"last_contact_date": row.LastContactDate,
		"updated_at":        row.UpdatedAt,
	}, nil
}

func (m leadJoinRow) toEntity() (entities.Lead, error) {
	var tags []string
	if len(m.Tags) > 0 {
		if err := json.Unmarshal(m.Tags, &tags); err != nil {
			return entities.Lead{}, err
		}
	}

	item := entities.Lead{
		LeadID:          m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           stringOrEmpty(m.Phone),
		Company:         stringOrEmpty(m.Company),
		Status:          entities.LeadStatus(m.Status),
		Source:          stringOrEmpty(m.Source),
		Value:           m.Value,
		Notes:           stringOrEmpty(m.Notes),
		Tags:            copyOrEmpty(tags),
		AssignedTo:      stringOrEmpty(m.AssignedTo),
		CampaignID:      stringOrEmpty(m.CampaignID),
		LastContactDate: normalizeOptionalTime(m.LastContactDate),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
	if m.AssignedUserID != nil {
		item.AssignedUser = &entities.UserSummary{
			UserID: *m.AssignedUserID,
			Name:   stringOrEmpty(m.AssignedUserName),
			Email:  stringOrEmpty(m.AssignedUserEmail),
		}
	}
	return item, nil
}

func copyOrEmpty(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	return append([]string(nil), items...)
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
