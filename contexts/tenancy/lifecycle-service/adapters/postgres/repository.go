package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/ports"
	"orbit/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the PostgreSQL adapter for the organization, space, and
// outbox ports.
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

func (r *Repository) CreateOrganization(ctx context.Context, org entities.Organization) error {
	row := organizationModelFromEntity(org)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateOrganization(ctx context.Context, org entities.Organization) error {
	row := organizationModelFromEntity(org)
	result := r.db.WithContext(ctx).
		Model(&organizationModel{}).
		Where("organization_id = ?", strings.TrimSpace(org.ID)).
		Select("confidentiality", "owners", "updated_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrganizationNotFound
	}
	return nil
}

func (r *Repository) DeleteOrganization(ctx context.Context, orgID string) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", strings.TrimSpace(orgID)).
		Delete(&organizationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrganizationNotFound
	}
	return nil
}

func (r *Repository) GetOrganization(ctx context.Context, orgID string) (entities.Organization, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", strings.TrimSpace(orgID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, domainerrors.ErrOrganizationNotFound
		}
		return entities.Organization{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetOrganizationByName(ctx context.Context, name string) (entities.Organization, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, domainerrors.ErrOrganizationNotFound
		}
		return entities.Organization{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListOrganizations(ctx context.Context) ([]entities.Organization, error) {
	var rows []organizationModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Organization, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateSpace(ctx context.Context, space entities.Space) error {
	row := spaceModelFromEntity(space)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateSpace(ctx context.Context, space entities.Space) error {
	row := spaceModelFromEntity(space)
	result := r.db.WithContext(ctx).
		Model(&spaceModel{}).
		Where("space_id = ? AND organization_id = ?", strings.TrimSpace(space.ID), strings.TrimSpace(space.OrganizationID)).
		Select("confidentiality", "state", "owners", "updated_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSpaceNotFound
	}
	return nil
}

func (r *Repository) DeleteSpace(ctx context.Context, orgID string, spaceID string) error {
	result := r.db.WithContext(ctx).
		Where("space_id = ? AND organization_id = ?", strings.TrimSpace(spaceID), strings.TrimSpace(orgID)).
		Delete(&spaceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSpaceNotFound
	}
	return nil
}

func (r *Repository) GetSpace(ctx context.Context, orgID string, spaceID string) (entities.Space, error) {
	var row spaceModel
	err := r.db.WithContext(ctx).
		Where("space_id = ? AND organization_id = ?", strings.TrimSpace(spaceID), strings.TrimSpace(orgID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Space{}, domainerrors.ErrSpaceNotFound
		}
		return entities.Space{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetSpaceByName(ctx context.Context, orgID string, name string) (entities.Space, error) {
	var row spaceModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", strings.TrimSpace(orgID), strings.TrimSpace(name)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Space{}, domainerrors.ErrSpaceNotFound
		}
		return entities.Space{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSpaces(ctx context.Context, orgID string) ([]entities.Space, error) {
	var rows []spaceModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", strings.TrimSpace(orgID)).
		Order("name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Space, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:  message.OutboxID,
		Topic:     message.Topic,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    outbox.StatusPending,
		CreatedAt: message.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			Topic:     row.Topic,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
