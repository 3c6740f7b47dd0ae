package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	CoverageFull         = "Full"
	CoveragePartial      = "Partial"
	CoverageIntroduction = "Introduction"
)

type LearningModule struct {
	LearningModuleID uuid.UUID `gorm:"type:uuid;primaryKey" json:"learning_module_id"`
	Title            string    `gorm:"not null" json:"title"`
	Description      *string   `json:"description"`
	Provider         *string   `json:"provider"`
	Duration         *string   `json:"duration"`
	URL              *string   `gorm:"column:url" json:"url"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (LearningModule) TableName() string { return "learning_modules" }

// LearningModuleCompetency links a module to a competency. The link table
// exists for forward compatibility; nothing populates it yet.
type LearningModuleCompetency struct {
	LearningModuleCompetencyID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"learning_module_competency_id"`
	LearningModuleID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"learning_module_id"`
	LearningModule             *LearningModule `gorm:"foreignKey:LearningModuleID;references:LearningModuleID" json:"learning_module,omitempty"`
	CompetencyID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"competency_id"`
	Competency                 *Competency     `gorm:"foreignKey:CompetencyID;references:CompetencyID" json:"competency,omitempty"`
	CoverageLevel              *string         `json:"coverage_level"`
	Notes                      *string         `json:"notes"`
	CreatedAt                  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt                  time.Time       `gorm:"not null" json:"updated_at"`
}

func (LearningModuleCompetency) TableName() string { return "learning_module_competencies" }
