package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type RoleRepo interface {
	List(ctx context.Context, tx *gorm.DB, filter RoleFilter) ([]*types.Role, error)
	GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error)
	GetByCode(ctx context.Context, tx *gorm.DB, roleCode string) (*types.Role, error)
	Create(ctx context.Context, tx *gorm.DB, roles []*types.Role) ([]*types.Role, error)
	Update(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	return &roleRepo{db: db, log: baseLog.With("repo", "RoleRepo")}
}

func (r *roleRepo) List(ctx context.Context, tx *gorm.DB, filter RoleFilter) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.Role{})
	if filter.Type != "" {
		q = q.Where("role_type = ?", filter.Type)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(role_title) LIKE LOWER(?) OR LOWER(role_description) LIKE LOWER(?) OR LOWER(role_code) LIKE LOWER(?)",
			term, term, term,
		)
	}

	var results []*types.Role
	if err := q.Order("role_title").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Role
	err := transaction.WithContext(ctx).
		Where("role_id = ?", roleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *roleRepo) GetByCode(ctx context.Context, tx *gorm.DB, roleCode string) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Role
	err := transaction.WithContext(ctx).
		Where("role_code = ?", roleCode).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *roleRepo) Create(ctx context.Context, tx *gorm.DB, roles []*types.Role) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(roles) == 0 {
		return []*types.Role{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepo) Update(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepo) DeleteByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("role_id = ?", roleID).
		Delete(&types.Role{}).Error
}

func (r *roleRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Role{}).Error
}
