package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

const competencyViewSelect = `
	competencies.competency_id,
	competencies.competency_code,
	competencies.competency_title,
	competencies.competency_statement,
	competencies.sort_order,
	competencies.subdomain_id,
	subdomains.subdomain_name,
	subdomains.subdomain_title,
	domains.domain_id,
	domains.domain_name,
	domains.domain_title`

type CompetencyRepo interface {
	ListView(ctx context.Context, tx *gorm.DB, filter CompetencyFilter) ([]*types.CompetencyView, error)
	GetViewByID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) (*types.CompetencyView, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Competency, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, competencyIDs []uuid.UUID) ([]*types.Competency, error)
	Create(ctx context.Context, tx *gorm.DB, competencies []*types.Competency) ([]*types.Competency, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type competencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) CompetencyRepo {
	return &competencyRepo{db: db, log: baseLog.With("repo", "CompetencyRepo")}
}

func (r *competencyRepo) viewQuery(ctx context.Context, transaction *gorm.DB) *gorm.DB {
	return transaction.WithContext(ctx).
		Table("competencies").
		Select(competencyViewSelect).
		Joins("INNER JOIN subdomains ON subdomains.subdomain_id = competencies.subdomain_id").
		Joins("INNER JOIN domains ON domains.domain_id = subdomains.domain_id")
}

func (r *competencyRepo) ListView(ctx context.Context, tx *gorm.DB, filter CompetencyFilter) ([]*types.CompetencyView, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := r.viewQuery(ctx, transaction)
	// A subdomain filter is strictly narrower than a domain filter, so it wins.
	if filter.SubdomainID != uuid.Nil {
		q = q.Where("competencies.subdomain_id = ?", filter.SubdomainID)
	} else if filter.DomainID != uuid.Nil {
		q = q.Where("domains.domain_id = ?", filter.DomainID)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(competencies.competency_title) LIKE LOWER(?) OR LOWER(competencies.competency_statement) LIKE LOWER(?) OR LOWER(competencies.competency_code) LIKE LOWER(?)",
			term, term, term,
		)
	}

	var results []*types.CompetencyView
	if err := q.Order("competencies.sort_order").Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *competencyRepo) GetViewByID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) (*types.CompetencyView, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.CompetencyView
	err := r.viewQuery(ctx, transaction).
		Where("competencies.competency_id = ?", competencyID).
		Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *competencyRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Competency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Competency
	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("competency_code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *competencyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, competencyIDs []uuid.UUID) ([]*types.Competency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Competency
	if len(competencyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("competency_id IN ?", competencyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *competencyRepo) Create(ctx context.Context, tx *gorm.DB, competencies []*types.Competency) ([]*types.Competency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(competencies) == 0 {
		return []*types.Competency{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&competencies).Error; err != nil {
		return nil, err
	}
	return competencies, nil
}

func (r *competencyRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Competency{}).Error
}
