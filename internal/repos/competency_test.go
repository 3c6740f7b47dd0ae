package repos

import (
	"context"
	"testing"

	"github.com/dhlf/dhcf-backend/internal/testutil"
)

func TestCompetencyRepoListViewOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCompetencyRepo(db, testutil.Logger(t))

	domain := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	sub := testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-S", 1)
	second := testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.2", 2)
	first := testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.1", 1)

	views, err := repo.ListView(ctx, tx, CompetencyFilter{})
	if err != nil {
		t.Fatalf("ListView: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(views))
	}
	if views[0].CompetencyID != first.CompetencyID || views[1].CompetencyID != second.CompetencyID {
		t.Fatalf("rows not ordered by sort_order: %v, %v", views[0].CompetencyCode, views[1].CompetencyCode)
	}
	if views[0].DomainName != domain.DomainName || views[0].SubdomainName != sub.SubdomainName {
		t.Fatalf("joined names missing: %+v", views[0])
	}
}

func TestCompetencyRepoListViewFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCompetencyRepo(db, testutil.Logger(t))

	leadership := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	data := testutil.SeedDomain(t, ctx, tx, "DM", 2)
	leadSub := testutil.SeedSubdomain(t, ctx, tx, leadership.DomainID, "LG-S", 1)
	dataSub := testutil.SeedSubdomain(t, ctx, tx, data.DomainID, "DM-S", 1)
	testutil.SeedCompetency(t, ctx, tx, leadSub.SubdomainID, "LG 1.1", 1)
	dataComp := testutil.SeedCompetency(t, ctx, tx, dataSub.SubdomainID, "DM 1.1", 1)

	byDomain, err := repo.ListView(ctx, tx, CompetencyFilter{DomainID: data.DomainID})
	if err != nil {
		t.Fatalf("ListView by domain: %v", err)
	}
	if len(byDomain) != 1 || byDomain[0].CompetencyID != dataComp.CompetencyID {
		t.Fatalf("domain filter returned %d rows", len(byDomain))
	}

	bySubdomain, err := repo.ListView(ctx, tx, CompetencyFilter{SubdomainID: dataSub.SubdomainID})
	if err != nil {
		t.Fatalf("ListView by subdomain: %v", err)
	}
	if len(bySubdomain) != 1 || bySubdomain[0].CompetencyID != dataComp.CompetencyID {
		t.Fatalf("subdomain filter returned %d rows", len(bySubdomain))
	}
}

func TestCompetencyRepoListViewSearch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCompetencyRepo(db, testutil.Logger(t))

	domain := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	sub := testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-S", 1)
	target := testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.1", 1)
	testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "DM 9.9", 2)

	// Case-insensitive match against the code.
	views, err := repo.ListView(ctx, tx, CompetencyFilter{Search: "lg 1"})
	if err != nil {
		t.Fatalf("ListView search: %v", err)
	}
	if len(views) != 1 || views[0].CompetencyID != target.CompetencyID {
		t.Fatalf("search returned %d rows", len(views))
	}

	// Match against the title as well.
	views, err = repo.ListView(ctx, tx, CompetencyFilter{Search: "competency dm"})
	if err != nil {
		t.Fatalf("ListView title search: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("title search returned %d rows", len(views))
	}
}

func TestCompetencyRepoGetViewByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCompetencyRepo(db, testutil.Logger(t))

	domain := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	sub := testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-S", 1)
	comp := testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.1", 1)

	view, err := repo.GetViewByID(ctx, tx, comp.CompetencyID)
	if err != nil {
		t.Fatalf("GetViewByID: %v", err)
	}
	if view == nil || view.CompetencyCode != "LG 1.1" {
		t.Fatalf("view = %+v", view)
	}

	missing, err := repo.GetViewByID(ctx, tx, domain.DomainID)
	if err != nil {
		t.Fatalf("GetViewByID missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown id")
	}
}

func TestCompetencyRepoGetByCodes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCompetencyRepo(db, testutil.Logger(t))

	domain := testutil.SeedDomain(t, ctx, tx, "LG", 1)
	sub := testutil.SeedSubdomain(t, ctx, tx, domain.DomainID, "LG-S", 1)
	testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.1", 1)
	testutil.SeedCompetency(t, ctx, tx, sub.SubdomainID, "LG 1.2", 2)

	found, err := repo.GetByCodes(ctx, tx, []string{"LG 1.1", "LG 1.2", "ZZ 0.0"})
	if err != nil {
		t.Fatalf("GetByCodes: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}
}
