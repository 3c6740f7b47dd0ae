package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type CourseRepo interface {
	List(ctx context.Context, tx *gorm.DB, filter ModuleFilter) ([]*types.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error)
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) List(ctx context.Context, tx *gorm.DB, filter ModuleFilter) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.Course{})
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

	var results []*types.Course
	if err := q.Order("title").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Course
	err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courses) == 0 {
		return []*types.Course{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Update(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) DeleteByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&types.Course{}).Error
}

type CourseCompetencyRepo interface {
	DeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type courseCompetencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) CourseCompetencyRepo {
	return &courseCompetencyRepo{db: db, log: baseLog.With("repo", "CourseCompetencyRepo")}
}

func (r *courseCompetencyRepo) DeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&types.CourseCompetency{}).Error
}
