package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type LearningModuleRepo interface {
	List(ctx context.Context, tx *gorm.DB, filter ModuleFilter) ([]*types.LearningModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.LearningModule, error)
	Create(ctx context.Context, tx *gorm.DB, modules []*types.LearningModule) ([]*types.LearningModule, error)
	Update(ctx context.Context, tx *gorm.DB, module *types.LearningModule) (*types.LearningModule, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error
}

type learningModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleRepo {
	return &learningModuleRepo{db: db, log: baseLog.With("repo", "LearningModuleRepo")}
}

func (r *learningModuleRepo) List(ctx context.Context, tx *gorm.DB, filter ModuleFilter) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.LearningModule{})
	if filter.Provider != "" {
		q = q.Where("provider = ?", filter.Provider)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(provider) LIKE LOWER(?)",
			term, term, term,
		)
	}

	var results []*types.LearningModule
	if err := q.Order("title").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.LearningModule
	err := transaction.WithContext(ctx).
		Where("learning_module_id = ?", moduleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *learningModuleRepo) Create(ctx context.Context, tx *gorm.DB, modules []*types.LearningModule) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(modules) == 0 {
		return []*types.LearningModule{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *learningModuleRepo) Update(ctx context.Context, tx *gorm.DB, module *types.LearningModule) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

func (r *learningModuleRepo) DeleteByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("learning_module_id = ?", moduleID).
		Delete(&types.LearningModule{}).Error
}

type LearningModuleCompetencyRepo interface {
	DeleteByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error
}

type learningModuleCompetencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleCompetencyRepo {
	return &learningModuleCompetencyRepo{db: db, log: baseLog.With("repo", "LearningModuleCompetencyRepo")}
}

func (r *learningModuleCompetencyRepo) DeleteByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("learning_module_id = ?", moduleID).
		Delete(&types.LearningModuleCompetency{}).Error
}
