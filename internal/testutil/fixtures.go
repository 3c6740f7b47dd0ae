package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/types"
)

func SeedDomain(tb testing.TB, ctx context.Context, tx *gorm.DB, code string, sortOrder int) *types.Domain {
	tb.Helper()
	d := &types.Domain{
		DomainID:    uuid.New(),
		DomainCode:  code,
		DomainName:  "Domain " + code,
		DomainTitle: "Domain " + code,
		SortOrder:   sortOrder,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed domain: %v", err)
	}
	return d
}

func SeedSubdomain(tb testing.TB, ctx context.Context, tx *gorm.DB, domainID uuid.UUID, code string, sortOrder int) *types.Subdomain {
	tb.Helper()
	s := &types.Subdomain{
		SubdomainID:    uuid.New(),
		DomainID:       domainID,
		SubdomainCode:  code,
		SubdomainName:  "Subdomain " + code,
		SubdomainTitle: "Subdomain " + code,
		SortOrder:      sortOrder,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subdomain: %v", err)
	}
	return s
}

func SeedCompetency(tb testing.TB, ctx context.Context, tx *gorm.DB, subdomainID uuid.UUID, code string, sortOrder int) *types.Competency {
	tb.Helper()
	c := &types.Competency{
		CompetencyID:    uuid.New(),
		SubdomainID:     subdomainID,
		CompetencyCode:  code,
		CompetencyTitle: "Competency " + code,
		SortOrder:       sortOrder,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed competency: %v", err)
	}
	return c
}

func SeedCriteria(tb testing.TB, ctx context.Context, tx *gorm.DB, competencyID uuid.UUID, text string, sortOrder int) *types.PerformanceCriteria {
	tb.Helper()
	pc := &types.PerformanceCriteria{
		CriteriaID:   uuid.New(),
		CompetencyID: competencyID,
		CriteriaText: text,
		SortOrder:    sortOrder,
	}
	if err := tx.WithContext(ctx).Create(pc).Error; err != nil {
		tb.Fatalf("seed performance criteria: %v", err)
	}
	return pc
}

func SeedRole(tb testing.TB, ctx context.Context, tx *gorm.DB, code, title, roleType string) *types.Role {
	tb.Helper()
	r := &types.Role{
		RoleID:    uuid.New(),
		RoleCode:  code,
		RoleTitle: title,
		RoleType:  roleType,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed role: %v", err)
	}
	return r
}

func SeedRoleCompetency(tb testing.TB, ctx context.Context, tx *gorm.DB, roleID, competencyID uuid.UUID) *types.RoleCompetency {
	tb.Helper()
	rc := &types.RoleCompetency{
		RoleCompetencyID: uuid.New(),
		RoleID:           roleID,
		CompetencyID:     competencyID,
		ProficiencyLevel: types.ProficiencyRequired,
		IsRequired:       true,
	}
	if err := tx.WithContext(ctx).Create(rc).Error; err != nil {
		tb.Fatalf("seed role competency: %v", err)
	}
	return rc
}
