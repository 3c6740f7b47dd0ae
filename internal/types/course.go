package types

import (
	"time"

	"github.com/google/uuid"
)

// Course is the legacy catalog entity that predates LearningModule. The
// CRUD surface is kept so existing catalog data stays reachable.
type Course struct {
	CourseID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	Provider    *string   `json:"provider"`
	Duration    *string   `json:"duration"`
	URL         *string   `gorm:"column:url" json:"url"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

type CourseCompetency struct {
	CourseCompetencyID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"course_competency_id"`
	CourseID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"course_id"`
	Course             *Course     `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	CompetencyID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"competency_id"`
	Competency         *Competency `gorm:"foreignKey:CompetencyID;references:CompetencyID" json:"competency,omitempty"`
	CoverageLevel      *string     `json:"coverage_level"`
	Notes              *string     `json:"notes"`
	CreatedAt          time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"not null" json:"updated_at"`
}

func (CourseCompetency) TableName() string { return "course_competencies" }
