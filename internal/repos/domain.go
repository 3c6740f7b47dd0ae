package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type DomainRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Domain, error)
	GetByID(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) (*types.Domain, error)
	Create(ctx context.Context, tx *gorm.DB, domains []*types.Domain) ([]*types.Domain, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type domainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainRepo(db *gorm.DB, baseLog *logger.Logger) DomainRepo {
	return &domainRepo{db: db, log: baseLog.With("repo", "DomainRepo")}
}

func (r *domainRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Domain
	if err := transaction.WithContext(ctx).
		Order("sort_order").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *domainRepo) GetByID(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) (*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Domain
	err := transaction.WithContext(ctx).
		Where("domain_id = ?", domainID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *domainRepo) Create(ctx context.Context, tx *gorm.DB, domains []*types.Domain) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(domains) == 0 {
		return []*types.Domain{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

func (r *domainRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Domain{}).Error
}
