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

// RoleCreateInput carries the fields accepted when creating a role.
type RoleCreateInput struct {
	RoleCode        string  `json:"role_code"`
	RoleTitle       string  `json:"role_title"`
	RoleType        string  `json:"role_type"`
	RoleDescription *string `json:"role_description"`
}

// RoleUpdateInput carries optional fields for a partial update. Nil
// pointers leave the stored value untouched.
type RoleUpdateInput struct {
	RoleCode        *string `json:"role_code"`
	RoleTitle       *string `json:"role_title"`
	RoleType        *string `json:"role_type"`
	RoleDescription *string `json:"role_description"`
}

// MapCompetenciesInput adds a batch of competencies to a role.
type MapCompetenciesInput struct {
	CompetencyIDs    []uuid.UUID `json:"competency_ids"`
	ProficiencyLevel string      `json:"proficiency_level"`
	IsRequired       *bool       `json:"is_required"`
	Notes            *string     `json:"notes"`
}

type RoleService interface {
	ListRoles(ctx context.Context, tx *gorm.DB, filter repos.RoleFilter) ([]*types.Role, error)
	GetRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error)
	CreateRole(ctx context.Context, tx *gorm.DB, input RoleCreateInput) (*types.Role, error)
	UpdateRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID, input RoleUpdateInput) (*types.Role, error)
	DeleteRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (bool, error)
	GetRoleCompetencies(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) ([]*types.RoleCompetencyView, error)
	MapCompetencies(ctx context.Context, tx *gorm.DB, roleID uuid.UUID, input MapCompetenciesInput) ([]*types.RoleCompetency, error)
	UnmapCompetency(ctx context.Context, tx *gorm.DB, roleID, competencyID uuid.UUID) error
}

type roleService struct {
	db             *gorm.DB
	log            *logger.Logger
	roleRepo       repos.RoleRepo
	competencyRepo repos.CompetencyRepo
	mappingRepo    repos.RoleCompetencyRepo
}

func NewRoleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roleRepo repos.RoleRepo,
	competencyRepo repos.CompetencyRepo,
	mappingRepo repos.RoleCompetencyRepo,
) RoleService {
	return &roleService{
		db:             db,
		log:            baseLog.With("service", "RoleService"),
		roleRepo:       roleRepo,
		competencyRepo: competencyRepo,
		mappingRepo:    mappingRepo,
	}
}

func (s *roleService) ListRoles(ctx context.Context, tx *gorm.DB, filter repos.RoleFilter) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.roleRepo.List(ctx, transaction, filter)
}

func (s *roleService) GetRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.roleRepo.GetByID(ctx, transaction, roleID)
}

func (s *roleService) CreateRole(ctx context.Context, tx *gorm.DB, input RoleCreateInput) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	if !types.ValidRoleType(input.RoleType) {
		return nil, ErrInvalidRoleType
	}
	existing, err := s.roleRepo.GetByCode(ctx, transaction, input.RoleCode)
	if err != nil {
		return nil, fmt.Errorf("check role code %q: %w", input.RoleCode, err)
	}
	if existing != nil {
		return nil, ErrDuplicateRoleCode
	}
	role := &types.Role{
		RoleID:          uuid.New(),
		RoleCode:        input.RoleCode,
		RoleTitle:       input.RoleTitle,
		RoleType:        input.RoleType,
		RoleDescription: input.RoleDescription,
	}
	created, err := s.roleRepo.Create(ctx, transaction, []*types.Role{role})
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return created[0], nil
}

func (s *roleService) UpdateRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID, input RoleUpdateInput) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	role, err := s.roleRepo.GetByID(ctx, transaction, roleID)
	if err != nil {
		return nil, fmt.Errorf("get role %s: %w", roleID, err)
	}
	if role == nil {
		return nil, nil
	}
	if input.RoleCode != nil && *input.RoleCode != role.RoleCode {
		other, err := s.roleRepo.GetByCode(ctx, transaction, *input.RoleCode)
		if err != nil {
			return nil, fmt.Errorf("check role code %q: %w", *input.RoleCode, err)
		}
		if other != nil {
			return nil, ErrDuplicateRoleCode
		}
		role.RoleCode = *input.RoleCode
	}
	if input.RoleTitle != nil {
		role.RoleTitle = *input.RoleTitle
	}
	if input.RoleType != nil {
		if !types.ValidRoleType(*input.RoleType) {
			return nil, ErrInvalidRoleType
		}
		role.RoleType = *input.RoleType
	}
	if input.RoleDescription != nil {
		role.RoleDescription = input.RoleDescription
	}
	return s.roleRepo.Update(ctx, transaction, role)
}

// DeleteRole removes the role and its competency mappings together. The
// bool reports whether a role existed at all.
func (s *roleService) DeleteRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	role, err := s.roleRepo.GetByID(ctx, transaction, roleID)
	if err != nil {
		return false, fmt.Errorf("get role %s: %w", roleID, err)
	}
	if role == nil {
		return false, nil
	}
	err = transaction.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := s.mappingRepo.DeleteByRoleID(ctx, txn, roleID); err != nil {
			return fmt.Errorf("delete mappings for role %s: %w", roleID, err)
		}
		if err := s.roleRepo.DeleteByID(ctx, txn, roleID); err != nil {
			return fmt.Errorf("delete role %s: %w", roleID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *roleService) GetRoleCompetencies(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) ([]*types.RoleCompetencyView, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.mappingRepo.GetViewByRoleID(ctx, transaction, roleID)
}

// MapCompetencies appends mappings for the given competency IDs. Every
// referenced ID must exist; one unknown ID rejects the whole batch.
func (s *roleService) MapCompetencies(ctx context.Context, tx *gorm.DB, roleID uuid.UUID, input MapCompetenciesInput) ([]*types.RoleCompetency, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	role, err := s.roleRepo.GetByID(ctx, transaction, roleID)
	if err != nil {
		return nil, fmt.Errorf("get role %s: %w", roleID, err)
	}
	if role == nil {
		return nil, nil
	}
	level := input.ProficiencyLevel
	if level == "" {
		level = types.ProficiencyRequired
	}
	if !types.ValidProficiencyLevel(level) {
		return nil, ErrInvalidProficiency
	}

	found, err := s.competencyRepo.GetByIDs(ctx, transaction, input.CompetencyIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve competency ids: %w", err)
	}
	if len(found) != len(input.CompetencyIDs) {
		foundSet := make(map[uuid.UUID]bool, len(found))
		for _, c := range found {
			foundSet[c.CompetencyID] = true
		}
		var missing []string
		for _, id := range input.CompetencyIDs {
			if !foundSet[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, &MissingCompetenciesError{MissingIDs: missing}
	}

	isRequired := true
	if input.IsRequired != nil {
		isRequired = *input.IsRequired
	}
	mappings := make([]*types.RoleCompetency, 0, len(input.CompetencyIDs))
	for _, id := range input.CompetencyIDs {
		mappings = append(mappings, &types.RoleCompetency{
			RoleCompetencyID: uuid.New(),
			RoleID:           roleID,
			CompetencyID:     id,
			ProficiencyLevel: level,
			IsRequired:       isRequired,
			Notes:            input.Notes,
		})
	}
	return s.mappingRepo.Create(ctx, transaction, mappings)
}

func (s *roleService) UnmapCompetency(ctx context.Context, tx *gorm.DB, roleID, competencyID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return s.mappingRepo.DeleteByRoleAndCompetency(ctx, transaction, roleID, competencyID)
}
