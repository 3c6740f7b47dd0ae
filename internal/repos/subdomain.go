package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type SubdomainRepo interface {
	GetByDomainID(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*types.Subdomain, error)
	Create(ctx context.Context, tx *gorm.DB, subdomains []*types.Subdomain) ([]*types.Subdomain, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type subdomainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubdomainRepo(db *gorm.DB, baseLog *logger.Logger) SubdomainRepo {
	return &subdomainRepo{db: db, log: baseLog.With("repo", "SubdomainRepo")}
}

func (r *subdomainRepo) GetByDomainID(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*types.Subdomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Subdomain
	if err := transaction.WithContext(ctx).
		Where("domain_id = ?", domainID).
		Order("sort_order").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subdomainRepo) Create(ctx context.Context, tx *gorm.DB, subdomains []*types.Subdomain) ([]*types.Subdomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(subdomains) == 0 {
		return []*types.Subdomain{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&subdomains).Error; err != nil {
		return nil, err
	}
	return subdomains, nil
}

func (r *subdomainRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Subdomain{}).Error
}
