package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTypeGovernment = "Government"
	RoleTypeWorldBank  = "World Bank"
	RoleTypeOther      = "Other"
)

func ValidRoleType(t string) bool {
	switch t {
	case RoleTypeGovernment, RoleTypeWorldBank, RoleTypeOther:
		return true
	}
	return false
}

const (
	ProficiencyRequired     = "Required"
	ProficiencyBasic        = "Basic"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
)

func ValidProficiencyLevel(p string) bool {
	switch p {
	case ProficiencyRequired, ProficiencyBasic, ProficiencyIntermediate, ProficiencyAdvanced:
		return true
	}
	return false
}

type Role struct {
	RoleID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"role_id"`
	RoleCode        string    `gorm:"index;not null" json:"role_code"`
	RoleTitle       string    `gorm:"not null" json:"role_title"`
	RoleType        string    `gorm:"not null" json:"role_type"`
	RoleDescription *string   `json:"role_description"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

type RoleCompetency struct {
	RoleCompetencyID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"role_competency_id"`
	RoleID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"role_id"`
	Role             *Role       `gorm:"foreignKey:RoleID;references:RoleID" json:"role,omitempty"`
	CompetencyID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"competency_id"`
	Competency       *Competency `gorm:"foreignKey:CompetencyID;references:CompetencyID" json:"competency,omitempty"`
	ProficiencyLevel string      `gorm:"not null;default:Required" json:"proficiency_level"`
	IsRequired       bool        `gorm:"not null;default:true" json:"is_required"`
	Notes            *string     `json:"notes"`
	CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}

func (RoleCompetency) TableName() string { return "role_competencies" }

// RoleCompetencyView annotates a mapping with the competency and its
// taxonomy context for the role detail endpoint.
type RoleCompetencyView struct {
	RoleCompetencyID    uuid.UUID `json:"role_competency_id"`
	CompetencyID        uuid.UUID `json:"competency_id"`
	CompetencyCode      string    `json:"competency_code"`
	CompetencyTitle     string    `json:"competency_title"`
	CompetencyStatement *string   `json:"competency_statement"`
	ProficiencyLevel    string    `json:"proficiency_level"`
	IsRequired          bool      `json:"is_required"`
	Notes               *string   `json:"notes"`
	SubdomainName       string    `json:"subdomain_name"`
	DomainName          string    `json:"domain_name"`
}
