package postgresadapter

import (
	"time"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

type organizationModel struct {
	OrganizationID  string    `gorm:"column:organization_id;primaryKey"`
	Name            string    `gorm:"column:name;uniqueIndex"`
	Confidentiality string    `gorm:"column:confidentiality"`
	Owners          []string  `gorm:"column:owners;serializer:json;type:jsonb"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (organizationModel) TableName() string { return "tenancy_organizations" }

func organizationModelFromEntity(org entities.Organization) organizationModel {
	return organizationModel{
		OrganizationID:  org.ID,
		Name:            org.Name,
		Confidentiality: string(org.Confidentiality),
		Owners:          org.Owners,
		CreatedAt:       org.CreatedAt.UTC(),
		UpdatedAt:       org.UpdatedAt.UTC(),
	}
}

func (m organizationModel) toEntity() entities.Organization {
	return entities.Organization{
		ID:              m.OrganizationID,
		Name:            m.Name,
		Confidentiality: entities.Confidentiality(m.Confidentiality),
		Owners:          m.Owners,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type spaceModel struct {
	SpaceID         string    `gorm:"column:space_id;primaryKey"`
	OrganizationID  string    `gorm:"column:organization_id;uniqueIndex:idx_space_org_name"`
	Name            string    `gorm:"column:name;uniqueIndex:idx_space_org_name"`
	Confidentiality string    `gorm:"column:confidentiality"`
	State           string    `gorm:"column:state"`
	Owners          []string  `gorm:"column:owners;serializer:json;type:jsonb"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (spaceModel) TableName() string { return "tenancy_spaces" }

func spaceModelFromEntity(space entities.Space) spaceModel {
	return spaceModel{
		SpaceID:         space.ID,
		OrganizationID:  space.OrganizationID,
		Name:            space.Name,
		Confidentiality: string(space.Confidentiality),
		State:           string(space.State),
		Owners:          space.Owners,
		CreatedAt:       space.CreatedAt.UTC(),
		UpdatedAt:       space.UpdatedAt.UTC(),
	}
}

func (m spaceModel) toEntity() entities.Space {
	return entities.Space{
		ID:              m.SpaceID,
		OrganizationID:  m.OrganizationID,
		Name:            m.Name,
		Confidentiality: entities.Confidentiality(m.Confidentiality),
		State:           entities.SpaceState(m.State),
		Owners:          m.Owners,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	Topic       string     `gorm:"column:topic"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "tenancy_outbox" }
