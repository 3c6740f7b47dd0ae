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

type CourseService interface {
	List(ctx context.Context, tx *gorm.DB, filter repos.ModuleFilter) ([]*types.Course, error)
	Get(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error)
	Create(ctx context.Context, tx *gorm.DB, input LearningModuleCreateInput) (*types.Course, error)
	Update(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, input LearningModuleUpdateInput) (*types.Course, error)
	Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (bool, error)
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	linkRepo   repos.CourseCompetencyRepo
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	linkRepo repos.CourseCompetencyRepo,
) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
		linkRepo:   linkRepo,
	}
}

func (s *courseService) List(ctx context.Context, tx *gorm.DB, filter repos.ModuleFilter) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.courseRepo.List(ctx, transaction, filter)
}

func (s *courseService) Get(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.courseRepo.GetByID(ctx, transaction, courseID)
}

func (s *courseService) Create(ctx context.Context, tx *gorm.DB, input LearningModuleCreateInput) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	course := &types.Course{
		CourseID:    uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Provider:    input.Provider,
		Duration:    input.Duration,
		URL:         input.URL,
	}
	created, err := s.courseRepo.Create(ctx, transaction, []*types.Course{course})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return created[0], nil
}

func (s *courseService) Update(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, input LearningModuleUpdateInput) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	course, err := s.courseRepo.GetByID(ctx, transaction, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", courseID, err)
	}
	if course == nil {
		return nil, nil
	}
	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = input.Description
	}
	if input.Provider != nil {
		course.Provider = input.Provider
	}
	if input.Duration != nil {
		course.Duration = input.Duration
	}
	if input.URL != nil {
		course.URL = input.URL
	}
	return s.courseRepo.Update(ctx, transaction, course)
}

func (s *courseService) Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	course, err := s.courseRepo.GetByID(ctx, transaction, courseID)
	if err != nil {
		return false, fmt.Errorf("get course %s: %w", courseID, err)
	}
	if course == nil {
		return false, nil
	}
	err = transaction.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := s.linkRepo.DeleteByCourseID(ctx, txn, courseID); err != nil {
			return fmt.Errorf("delete course links: %w", err)
		}
		if err := s.courseRepo.DeleteByID(ctx, txn, courseID); err != nil {
			return fmt.Errorf("delete course %s: %w", courseID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
