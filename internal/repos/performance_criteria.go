package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type PerformanceCriteriaRepo interface {
	GetByCompetencyID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) ([]*types.PerformanceCriteria, error)
	Create(ctx context.Context, tx *gorm.DB, criteria []*types.PerformanceCriteria) ([]*types.PerformanceCriteria, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type performanceCriteriaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPerformanceCriteriaRepo(db *gorm.DB, baseLog *logger.Logger) PerformanceCriteriaRepo {
	return &performanceCriteriaRepo{db: db, log: baseLog.With("repo", "PerformanceCriteriaRepo")}
}

func (r *performanceCriteriaRepo) GetByCompetencyID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) ([]*types.PerformanceCriteria, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PerformanceCriteria
	if err := transaction.WithContext(ctx).
		Where("competency_id = ?", competencyID).
		Order("sort_order").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *performanceCriteriaRepo) Create(ctx context.Context, tx *gorm.DB, criteria []*types.PerformanceCriteria) ([]*types.PerformanceCriteria, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(criteria) == 0 {
		return []*types.PerformanceCriteria{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&criteria).Error; err != nil {
		return nil, err
	}
	return criteria, nil
}

func (r *performanceCriteriaRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.PerformanceCriteria{}).Error
}
