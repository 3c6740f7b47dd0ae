package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/testutil"
	"github.com/dhlf/dhcf-backend/internal/types"
)

func TestRoleRepoListOrdersByTitle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRoleRepo(db, testutil.Logger(t))

	testutil.SeedRole(t, ctx, tx, "2", "Zettabyte Analyst", types.RoleTypeGovernment)
	testutil.SeedRole(t, ctx, tx, "1", "Architect", types.RoleTypeWorldBank)

	roles, err := repo.List(ctx, tx, RoleFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if roles[0].RoleTitle != "Architect" {
		t.Fatalf("roles not ordered by title: %q first", roles[0].RoleTitle)
	}
}

func TestRoleRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRoleRepo(db, testutil.Logger(t))

	testutil.SeedRole(t, ctx, tx, "1", "Chief Epidemiologist", types.RoleTypeGovernment)
	wb := testutil.SeedRole(t, ctx, tx, "10", "Task Team Leader (TTL)", types.RoleTypeWorldBank)

	byType, err := repo.List(ctx, tx, RoleFilter{Type: types.RoleTypeWorldBank})
	if err != nil {
		t.Fatalf("List by type: %v", err)
	}
	if len(byType) != 1 || byType[0].RoleID != wb.RoleID {
		t.Fatalf("type filter returned %d rows", len(byType))
	}

	bySearch, err := repo.List(ctx, tx, RoleFilter{Search: "epidemiolog"})
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].RoleCode != "1" {
		t.Fatalf("search filter returned %d rows", len(bySearch))
	}
}

func TestRoleRepoGetByCode(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRoleRepo(db, testutil.Logger(t))

	seeded := testutil.SeedRole(t, ctx, tx, "14", "Department Chief, MoH", types.RoleTypeGovernment)

	role, err := repo.GetByCode(ctx, tx, "14")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if role == nil || role.RoleID != seeded.RoleID {
		t.Fatalf("role = %+v", role)
	}

	missing, err := repo.GetByCode(ctx, tx, "999")
	if err != nil {
		t.Fatalf("GetByCode missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown code")
	}
}

func TestRoleRepoUpdate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRoleRepo(db, testutil.Logger(t))

	role := testutil.SeedRole(t, ctx, tx, "6", "Digital Health Enterprise Architect", types.RoleTypeGovernment)
	role.RoleTitle = "Enterprise Architect"

	updated, err := repo.Update(ctx, tx, role)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.RoleTitle != "Enterprise Architect" {
		t.Fatalf("title = %q", updated.RoleTitle)
	}

	reloaded, err := repo.GetByID(ctx, tx, role.RoleID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.RoleTitle != "Enterprise Architect" {
		t.Fatalf("persisted title = %q", reloaded.RoleTitle)
	}
}

func TestRoleRepoDeleteByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRoleRepo(db, testutil.Logger(t))

	role := testutil.SeedRole(t, ctx, tx, "8", "DH PIU Coordinator", types.RoleTypeGovernment)
	if err := repo.DeleteByID(ctx, tx, role.RoleID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}

	gone, err := repo.GetByID(ctx, tx, role.RoleID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if gone != nil {
		t.Fatal("role should be gone")
	}

	// Deleting an unknown id is a no-op, not an error.
	if err := repo.DeleteByID(ctx, tx, uuid.New()); err != nil {
		t.Fatalf("DeleteByID unknown: %v", err)
	}
}
