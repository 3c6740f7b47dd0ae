package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type LearningModuleCreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Provider    *string `json:"provider"`
	Duration    *string `json:"duration"`
	URL         *string `json:"url"`
}

type LearningModuleUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Provider    *string `json:"provider"`
	Duration    *string `json:"duration"`
	URL         *string `json:"url"`
}

type LearningModuleService interface {
	List(ctx context.Context, tx *gorm.DB, filter repos.ModuleFilter) ([]*types.LearningModule, error)
	Get(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.LearningModule, error)
	Create(ctx context.Context, tx *gorm.DB, input LearningModuleCreateInput) (*types.LearningModule, error)
	Update(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, input LearningModuleUpdateInput) (*types.LearningModule, error)
	Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (bool, error)
}

type learningModuleService struct {
	db         *gorm.DB
	log        *logger.Logger
	moduleRepo repos.LearningModuleRepo
	linkRepo   repos.LearningModuleCompetencyRepo
}

func NewLearningModuleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	moduleRepo repos.LearningModuleRepo,
	linkRepo repos.LearningModuleCompetencyRepo,
) LearningModuleService {
	return &learningModuleService{
		db:         db,
		log:        baseLog.With("service", "LearningModuleService"),
		moduleRepo: moduleRepo,
		linkRepo:   linkRepo,
	}
}

func (s *learningModuleService) List(ctx context.Context, tx *gorm.DB, filter repos.ModuleFilter) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.moduleRepo.List(ctx, transaction, filter)
}

func (s *learningModuleService) Get(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.moduleRepo.GetByID(ctx, transaction, moduleID)
}

func (s *learningModuleService) Create(ctx context.Context, tx *gorm.DB, input LearningModuleCreateInput) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	module := &types.LearningModule{
		LearningModuleID: uuid.New(),
		Title:            input.Title,
		Description:      input.Description,
		Provider:         input.Provider,
		Duration:         input.Duration,
		URL:              input.URL,
	}
	created, err := s.moduleRepo.Create(ctx, transaction, []*types.LearningModule{module})
	if err != nil {
		return nil, fmt.Errorf("create learning module: %w", err)
	}
	return created[0], nil
}

func (s *learningModuleService) Update(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, input LearningModuleUpdateInput) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	module, err := s.moduleRepo.GetByID(ctx, transaction, moduleID)
	if err != nil {
		return nil, fmt.Errorf("get learning module %s: %w", moduleID, err)
	}
	if module == nil {
		return nil, nil
	}
	if input.Title != nil {
		module.Title = *input.Title
	}
	if input.Description != nil {
		module.Description = input.Description
	}
	if input.Provider != nil {
		module.Provider = input.Provider
	}
	if input.Duration != nil {
		module.Duration = input.Duration
	}
	if input.URL != nil {
		module.URL = input.URL
	}
	return s.moduleRepo.Update(ctx, transaction, module)
}

// Delete removes the module and any competency links pointing at it.
func (s *learningModuleService) Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	module, err := s.moduleRepo.GetByID(ctx, transaction, moduleID)
	if err != nil {
		return false, fmt.Errorf("get learning module %s: %w", moduleID, err)
	}
	if module == nil {
		return false, nil
	}
	err = transaction.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := s.linkRepo.DeleteByModuleID(ctx, txn, moduleID); err != nil {
			return fmt.Errorf("delete module links: %w", err)
		}
		if err := s.moduleRepo.DeleteByID(ctx, txn, moduleID); err != nil {
			return fmt.Errorf("delete learning module %s: %w", moduleID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
