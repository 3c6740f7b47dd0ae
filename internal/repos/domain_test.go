package repos

import (
	"context"
	"testing"

	"github.com/dhlf/dhcf-backend/internal/testutil"
)

func TestDomainRepoListOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewDomainRepo(db, testutil.Logger(t))

	testutil.SeedDomain(t, ctx, tx, "DM", 2)
	testutil.SeedDomain(t, ctx, tx, "LG", 1)

	domains, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(domains))
	}
	if domains[0].DomainCode != "LG" || domains[1].DomainCode != "DM" {
		t.Fatalf("domains not ordered by sort_order: %q, %q", domains[0].DomainCode, domains[1].DomainCode)
	}
}

func TestSubdomainRepoGetByDomainID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSubdomainRepo(db, testutil.Logger(t))

	domain := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	other := testutil.SeedDomain(t, ctx, tx, "DM", 2)
	testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-2", 2)
	testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-1", 1)
	testutil.SeedSubdomain(t, ctx, tx, other.DomainID, "DM-1", 1)

	subs, err := repo.GetByDomainID(ctx, tx, domain.DomainID)
	if err != nil {
		t.Fatalf("GetByDomainID: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subdomains, got %d", len(subs))
	}
	if subs[0].SubdomainCode != "LG-1" {
		t.Fatalf("subdomains not ordered: %q first", subs[0].SubdomainCode)
	}
}

func TestPerformanceCriteriaRepoOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewPerformanceCriteriaRepo(db, testutil.Logger(t))

	domain := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	sub := testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-S", 1)
	comp := testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.1", 1)
	testutil.SeedCriteria(t, ctx, tx, comp.CompetencyID, "second", 2)
	testutil.SeedCriteria(t, ctx, tx, comp.CompetencyID, "first", 1)

	criteria, err := repo.GetByCompetencyID(ctx, tx, comp.CompetencyID)
	if err != nil {
		t.Fatalf("GetByCompetencyID: %v", err)
	}
	if len(criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(criteria))
	}
	if criteria[0].CriteriaText != "first" {
		t.Fatalf("criteria not ordered: %q first", criteria[0].CriteriaText)
	}
}
