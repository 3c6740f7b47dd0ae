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

// CompetencyDetail is a competency row with its performance criteria
// attached, returned by the single-competency view.
type CompetencyDetail struct {
	types.CompetencyView
	PerformanceCriteria []*types.PerformanceCriteria `json:"performance_criteria"`
}

// CatalogService is the read side of the framework taxonomy: domains,
// subdomains, competencies and their performance criteria.
type CatalogService interface {
	ListDomains(ctx context.Context, tx *gorm.DB) ([]*types.Domain, error)
	GetDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) (*types.Domain, error)
	ListSubdomains(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*types.Subdomain, error)
	ListCompetencies(ctx context.Context, tx *gorm.DB, filter repos.CompetencyFilter) ([]*types.CompetencyView, error)
	GetCompetency(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) (*CompetencyDetail, error)
}

type catalogService struct {
	db             *gorm.DB
	log            *logger.Logger
	domainRepo     repos.DomainRepo
	subdomainRepo  repos.SubdomainRepo
	competencyRepo repos.CompetencyRepo
	criteriaRepo   repos.PerformanceCriteriaRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	domainRepo repos.DomainRepo,
	subdomainRepo repos.SubdomainRepo,
	competencyRepo repos.CompetencyRepo,
	criteriaRepo repos.PerformanceCriteriaRepo,
) CatalogService {
	return &catalogService{
		db:             db,
		log:            baseLog.With("service", "CatalogService"),
		domainRepo:     domainRepo,
		subdomainRepo:  subdomainRepo,
		competencyRepo: competencyRepo,
		criteriaRepo:   criteriaRepo,
	}
}

func (s *catalogService) ListDomains(ctx context.Context, tx *gorm.DB) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.domainRepo.List(ctx, transaction)
}

func (s *catalogService) GetDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) (*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.domainRepo.GetByID(ctx, transaction, domainID)
}

func (s *catalogService) ListSubdomains(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*types.Subdomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.subdomainRepo.GetByDomainID(ctx, transaction, domainID)
}

func (s *catalogService) ListCompetencies(ctx context.Context, tx *gorm.DB, filter repos.CompetencyFilter) ([]*types.CompetencyView, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.competencyRepo.ListView(ctx, transaction, filter)
}

func (s *catalogService) GetCompetency(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) (*CompetencyDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	view, err := s.competencyRepo.GetViewByID(ctx, transaction, competencyID)
	if err != nil {
		return nil, fmt.Errorf("get competency %s: %w", competencyID, err)
	}
	if view == nil {
		return nil, nil
	}
	criteria, err := s.criteriaRepo.GetByCompetencyID(ctx, transaction, competencyID)
	if err != nil {
		return nil, fmt.Errorf("get performance criteria for %s: %w", competencyID, err)
	}
	if criteria == nil {
		criteria = []*types.PerformanceCriteria{}
	}
	return &CompetencyDetail{CompetencyView: *view, PerformanceCriteria: criteria}, nil
}
