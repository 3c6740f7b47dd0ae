package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

const roleCompetencyViewSelect = `
	role_competencies.role_competency_id,
	role_competencies.competency_id,
	competencies.competency_code,
	competencies.competency_title,
	competencies.competency_statement,
	role_competencies.proficiency_level,
	role_competencies.is_required,
	role_competencies.notes,
	subdomains.subdomain_name,
	domains.domain_name`

type RoleCompetencyRepo interface {
	GetViewByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) ([]*types.RoleCompetencyView, error)
	CountByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, mappings []*types.RoleCompetency) ([]*types.RoleCompetency, error)
	DeleteByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error
	DeleteByRoleAndCompetency(ctx context.Context, tx *gorm.DB, roleID, competencyID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type roleCompetencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) RoleCompetencyRepo {
	return &roleCompetencyRepo{db: db, log: baseLog.With("repo", "RoleCompetencyRepo")}
}

func (r *roleCompetencyRepo) GetViewByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) ([]*types.RoleCompetencyView, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RoleCompetencyView
	if err := transaction.WithContext(ctx).
		Table("role_competencies").
		Select(roleCompetencyViewSelect).
		Joins("INNER JOIN competencies ON competencies.competency_id = role_competencies.competency_id").
		Joins("INNER JOIN subdomains ON subdomains.subdomain_id = competencies.subdomain_id").
		Joins("INNER JOIN domains ON domains.domain_id = subdomains.domain_id").
		Where("role_competencies.role_id = ?", roleID).
		Order("competencies.sort_order").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *roleCompetencyRepo) CountByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.RoleCompetency{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *roleCompetencyRepo) Create(ctx context.Context, tx *gorm.DB, mappings []*types.RoleCompetency) ([]*types.RoleCompetency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(mappings) == 0 {
		return []*types.RoleCompetency{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *roleCompetencyRepo) DeleteByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("role_id = ?", roleID).
		Delete(&types.RoleCompetency{}).Error
}

// DeleteByRoleAndCompetency applies both conditions as one conjunctive SQL
// filter; only the single (role, competency) link row can ever match.
func (r *roleCompetencyRepo) DeleteByRoleAndCompetency(ctx context.Context, tx *gorm.DB, roleID, competencyID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("role_id = ? AND competency_id = ?", roleID, competencyID).
		Delete(&types.RoleCompetency{}).Error
}

func (r *roleCompetencyRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.RoleCompetency{}).Error
}
