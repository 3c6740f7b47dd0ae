package types

import (
	"time"

	"github.com/google/uuid"
)

type Competency struct {
	CompetencyID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"competency_id"`
	SubdomainID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"subdomain_id"`
	Subdomain           *Subdomain `gorm:"foreignKey:SubdomainID;references:SubdomainID" json:"subdomain,omitempty"`
	CompetencyCode      string     `gorm:"uniqueIndex;not null" json:"competency_code"`
	CompetencyTitle     string     `gorm:"not null" json:"competency_title"`
	CompetencyStatement *string    `json:"competency_statement"`
	SortOrder           int        `gorm:"not null" json:"sort_order"`
	CreatedAt           time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"not null" json:"updated_at"`
}

func (Competency) TableName() string { return "competencies" }

type PerformanceCriteria struct {
	CriteriaID   uuid.UUID   `gorm:"type:uuid;primaryKey" json:"criteria_id"`
	CompetencyID uuid.UUID   `gorm:"type:uuid;not null;index" json:"competency_id"`
	Competency   *Competency `gorm:"foreignKey:CompetencyID;references:CompetencyID" json:"competency,omitempty"`
	CriteriaText string      `gorm:"not null" json:"criteria_text"`
	SortOrder    int         `gorm:"not null" json:"sort_order"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (PerformanceCriteria) TableName() string { return "performance_criteria" }

// CompetencyView is a competency row joined with its subdomain and domain
// context, the shape every catalog read endpoint returns.
type CompetencyView struct {
	CompetencyID        uuid.UUID `json:"competency_id"`
	CompetencyCode      string    `json:"competency_code"`
	CompetencyTitle     string    `json:"competency_title"`
	CompetencyStatement *string   `json:"competency_statement"`
	SortOrder           int       `json:"sort_order"`
	SubdomainID         uuid.UUID `json:"subdomain_id"`
	SubdomainName       string    `json:"subdomain_name"`
	SubdomainTitle      string    `json:"subdomain_title"`
	DomainID            uuid.UUID `json:"domain_id"`
	DomainName          string    `json:"domain_name"`
	DomainTitle         string    `json:"domain_title"`
}
