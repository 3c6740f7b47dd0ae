package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/importer"
	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/rolemap"
	"github.com/dhlf/dhcf-backend/internal/types"
)

// Import failure codes. Handlers use them to pick a status and extra
// response fields; everything except role_not_in_catalog is caller error.
const (
	ImportErrFileTooLarge      = "file_too_large"
	ImportErrInvalidFile       = "invalid_file"
	ImportErrSheetNotFound     = "sheet_not_found"
	ImportErrEmptySheet        = "empty_sheet"
	ImportErrMissingRoleName   = "missing_role_name"
	ImportErrUnmappedRole      = "unmapped_role"
	ImportErrRoleNotInCatalog  = "role_not_in_catalog"
	ImportErrNoCompetencyCodes = "no_competency_codes"
	ImportErrUnknownCodes      = "unknown_competency_codes"
)

// ImportError is a structured mapping-import failure. Every field the
// caller needs to correct their input rides along with the code.
type ImportError struct {
	Code            string
	Message         string
	RoleName        string
	RoleCode        string
	MissingCodes    []string
	AvailableSheets []string
}

func (e *ImportError) Error() string { return e.Message }

type RolePreview struct {
	RoleID    uuid.UUID `json:"roleId"`
	RoleCode  string    `json:"roleCode"`
	RoleTitle string    `json:"roleTitle"`
	RoleType  string    `json:"roleType"`
}

// MappingPreview is the parse-step result: pure computation, nothing
// persisted. Field names mirror the mapping UI contract.
type MappingPreview struct {
	ExcelRoleName         string      `json:"excelRoleName"`
	Role                  RolePreview `json:"role"`
	CompetencyCount       int         `json:"competencyCount"`
	ValidCompetencies     int         `json:"validCompetencies"`
	InvalidCompetencies   int         `json:"invalidCompetencies"`
	InvalidCodes          []string    `json:"invalidCodes"`
	ValidCodes            []string    `json:"validCodes"`
	ExistingMappingsCount int         `json:"existingMappingsCount"`
	SheetName             string      `json:"sheetName"`
}

type MappingApplyResult struct {
	Message         string
	MappingsCreated int
}

type MappingService interface {
	Preview(ctx context.Context, tx *gorm.DB, upload io.Reader) (*MappingPreview, error)
	Apply(ctx context.Context, tx *gorm.DB, roleCode string, competencyCodes []string) (*MappingApplyResult, error)
}

type mappingService struct {
	db             *gorm.DB
	log            *logger.Logger
	roleNames      *rolemap.Table
	roleRepo       repos.RoleRepo
	competencyRepo repos.CompetencyRepo
	mappingRepo    repos.RoleCompetencyRepo
}

func NewMappingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roleNames *rolemap.Table,
	roleRepo repos.RoleRepo,
	competencyRepo repos.CompetencyRepo,
	mappingRepo repos.RoleCompetencyRepo,
) MappingService {
	return &mappingService{
		db:             db,
		log:            baseLog.With("service", "MappingService"),
		roleNames:      roleNames,
		roleRepo:       roleRepo,
		competencyRepo: competencyRepo,
		mappingRepo:    mappingRepo,
	}
}

// Preview parses the uploaded worksheet, resolves its role and validates
// every competency code against the catalog. Unknown codes are reported,
// never fatal, so the operator can decide before applying.
func (s *mappingService) Preview(ctx context.Context, tx *gorm.DB, upload io.Reader) (*MappingPreview, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	sheet, err := importer.Parse(upload)
	if err != nil {
		return nil, asImportError(err)
	}

	roleName := strings.TrimSpace(sheet.Records[0].Role)
	if roleName == "" {
		return nil, &ImportError{
			Code:    ImportErrMissingRoleName,
			Message: "Could not find role name in the Excel file",
		}
	}

	roleCode, ok := s.roleNames.Resolve(roleName)
	if !ok {
		return nil, &ImportError{
			Code:     ImportErrUnmappedRole,
			Message:  fmt.Sprintf("Role %q not found in mapping configuration. Please update the role mappings table", roleName),
			RoleName: roleName,
		}
	}

	role, err := s.roleRepo.GetByCode(ctx, transaction, roleCode)
	if err != nil {
		return nil, fmt.Errorf("look up role %q: %w", roleCode, err)
	}
	if role == nil {
		return nil, &ImportError{
			Code:     ImportErrRoleNotInCatalog,
			Message:  fmt.Sprintf("Role with code %q not found in database", roleCode),
			RoleCode: roleCode,
		}
	}

	codes := collectCodes(sheet.Records)
	if len(codes) == 0 {
		return nil, &ImportError{
			Code:    ImportErrNoCompetencyCodes,
			Message: "No competency codes found in the Excel file",
		}
	}

	found, err := s.competencyRepo.GetByCodes(ctx, transaction, codes)
	if err != nil {
		return nil, fmt.Errorf("validate competency codes: %w", err)
	}
	foundSet := make(map[string]bool, len(found))
	for _, c := range found {
		foundSet[c.CompetencyCode] = true
	}

	validCodes := make([]string, 0, len(found))
	invalidCodes := []string{}
	for _, code := range codes {
		if foundSet[code] {
			validCodes = append(validCodes, code)
		} else {
			invalidCodes = append(invalidCodes, code)
		}
	}

	existing, err := s.mappingRepo.CountByRoleID(ctx, transaction, role.RoleID)
	if err != nil {
		return nil, fmt.Errorf("count existing mappings: %w", err)
	}

	return &MappingPreview{
		ExcelRoleName: roleName,
		Role: RolePreview{
			RoleID:    role.RoleID,
			RoleCode:  role.RoleCode,
			RoleTitle: role.RoleTitle,
			RoleType:  role.RoleType,
		},
		CompetencyCount:       len(codes),
		ValidCompetencies:     len(validCodes),
		InvalidCompetencies:   len(invalidCodes),
		InvalidCodes:          invalidCodes,
		ValidCodes:            validCodes,
		ExistingMappingsCount: int(existing),
		SheetName:             sheet.Name,
	}, nil
}

// Apply replaces the role's entire mapping set with the supplied codes.
// The codes are re-validated here rather than trusted from a preview, and
// the delete+insert runs in one transaction so a failure leaves the
// previous mapping set intact.
func (s *mappingService) Apply(ctx context.Context, tx *gorm.DB, roleCode string, competencyCodes []string) (*MappingApplyResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	role, err := s.roleRepo.GetByCode(ctx, transaction, roleCode)
	if err != nil {
		return nil, fmt.Errorf("look up role %q: %w", roleCode, err)
	}
	if role == nil {
		return nil, &ImportError{
			Code:     ImportErrRoleNotInCatalog,
			Message:  fmt.Sprintf("Role with code %q not found", roleCode),
			RoleCode: roleCode,
		}
	}

	codes := trimAll(competencyCodes)
	found, err := s.competencyRepo.GetByCodes(ctx, transaction, codes)
	if err != nil {
		return nil, fmt.Errorf("resolve competency codes: %w", err)
	}
	// Strict count check: every supplied code must resolve to its own
	// catalog row, so duplicates and unknowns both fail before any write.
	if len(found) != len(codes) {
		foundSet := make(map[string]bool, len(found))
		for _, c := range found {
			foundSet[c.CompetencyCode] = true
		}
		var missing []string
		for _, code := range codes {
			if !foundSet[code] {
				missing = append(missing, code)
			}
		}
		return nil, &ImportError{
			Code:         ImportErrUnknownCodes,
			Message:      "Some competency codes were not found",
			MissingCodes: missing,
		}
	}

	mappings := make([]*types.RoleCompetency, 0, len(found))
	for _, comp := range found {
		mappings = append(mappings, &types.RoleCompetency{
			RoleCompetencyID: uuid.New(),
			RoleID:           role.RoleID,
			CompetencyID:     comp.CompetencyID,
			ProficiencyLevel: types.ProficiencyRequired,
			IsRequired:       true,
		})
	}

	err = transaction.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := s.mappingRepo.DeleteByRoleID(ctx, txn, role.RoleID); err != nil {
			return fmt.Errorf("delete existing mappings: %w", err)
		}
		if _, err := s.mappingRepo.Create(ctx, txn, mappings); err != nil {
			return fmt.Errorf("insert mappings: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Apply failed", "role_code", roleCode, "error", err)
		return nil, err
	}

	return &MappingApplyResult{
		Message:         fmt.Sprintf("Successfully mapped %d competencies to %s", len(mappings), role.RoleTitle),
		MappingsCreated: len(mappings),
	}, nil
}

// collectCodes trims, drops empties and dedupes while keeping first-seen
// worksheet order so previews stay deterministic.
func collectCodes(records []importer.Record) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, rec := range records {
		code := strings.TrimSpace(rec.Competencies)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

func trimAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func asImportError(err error) error {
	var sheetErr *importer.SheetNotFoundError
	switch {
	case errors.As(err, &sheetErr):
		return &ImportError{
			Code:            ImportErrSheetNotFound,
			Message:         sheetErr.Error(),
			AvailableSheets: sheetErr.Available,
		}
	case errors.Is(err, importer.ErrEmptySheet):
		return &ImportError{Code: ImportErrEmptySheet, Message: "The selected sheet is empty"}
	case errors.Is(err, importer.ErrFileTooLarge):
		return &ImportError{Code: ImportErrFileTooLarge, Message: "Uploaded file is too large (5MB limit)"}
	case errors.Is(err, importer.ErrNotASpreadsheet):
		return &ImportError{Code: ImportErrInvalidFile, Message: "File could not be read as an Excel workbook"}
	default:
		return err
	}
}
