package seed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

// Load clears the catalog and reloads it from the CSV exports in
// dataDir. Everything runs in one transaction so a bad file leaves the
// previous catalog untouched. Expected files: domains.csv,
// subdomains.csv, competencies.csv, performance_criteria.csv, roles.csv,
// role_competencies.csv.
func Load(ctx context.Context, database *gorm.DB, log *logger.Logger, dataDir string) error {
	domains, err := loadDomains(dataDir)
	if err != nil {
		return err
	}
	subdomains, err := loadSubdomains(dataDir)
	if err != nil {
		return err
	}
	competencies, err := loadCompetencies(dataDir)
	if err != nil {
		return err
	}
	criteria, err := loadCriteria(dataDir)
	if err != nil {
		return err
	}
	roles, err := loadRoles(dataDir)
	if err != nil {
		return err
	}
	mappings, err := loadMappings(dataDir)
	if err != nil {
		return err
	}

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first on the way out, parents first on the way in.
		for _, model := range []any{
			&types.RoleCompetency{},
			&types.PerformanceCriteria{},
			&types.Competency{},
			&types.Subdomain{},
			&types.Domain{},
			&types.Role{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		if err := tx.Create(domains).Error; err != nil {
			return fmt.Errorf("insert domains: %w", err)
		}
		log.Info("Imported domains", "count", len(domains))
		if err := tx.Create(subdomains).Error; err != nil {
			return fmt.Errorf("insert subdomains: %w", err)
		}
		log.Info("Imported subdomains", "count", len(subdomains))
		if err := tx.Create(competencies).Error; err != nil {
			return fmt.Errorf("insert competencies: %w", err)
		}
		log.Info("Imported competencies", "count", len(competencies))
		if err := tx.Create(criteria).Error; err != nil {
			return fmt.Errorf("insert performance criteria: %w", err)
		}
		log.Info("Imported performance criteria", "count", len(criteria))
		if err := tx.Create(roles).Error; err != nil {
			return fmt.Errorf("insert roles: %w", err)
		}
		log.Info("Imported roles", "count", len(roles))
		if err := tx.Create(mappings).Error; err != nil {
			return fmt.Errorf("insert role competencies: %w", err)
		}
		log.Info("Imported role competencies", "count", len(mappings))
		return nil
	})
}

func loadDomains(dir string) ([]*types.Domain, error) {
	rows, err := readCSV(dir, "domains.csv")
	if err != nil {
		return nil, err
	}
	out := make([]*types.Domain, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row, "domain_id")
		if err != nil {
			return nil, err
		}
		out = append(out, &types.Domain{
			DomainID:    id,
			DomainCode:  row["domain_code"],
			DomainName:  row["domain_name"],
			DomainTitle: row["domain_title"],
			SortOrder:   parseInt(row["sort_order"]),
		})
	}
	return out, nil
}

func loadSubdomains(dir string) ([]*types.Subdomain, error) {
	rows, err := readCSV(dir, "subdomains.csv")
	if err != nil {
		return nil, err
	}
	out := make([]*types.Subdomain, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row, "subdomain_id")
		if err != nil {
			return nil, err
		}
		domainID, err := parseUUID(row, "domain_id")
		if err != nil {
			return nil, err
		}
		out = append(out, &types.Subdomain{
			SubdomainID:    id,
			DomainID:       domainID,
			SubdomainCode:  row["subdomain_code"],
			SubdomainName:  row["subdomain_name"],
			SubdomainTitle: row["subdomain_title"],
			SortOrder:      parseInt(row["sort_order"]),
		})
	}
	return out, nil
}

func loadCompetencies(dir string) ([]*types.Competency, error) {
	rows, err := readCSV(dir, "competencies.csv")
	if err != nil {
		return nil, err
	}
	out := make([]*types.Competency, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row, "competency_id")
		if err != nil {
			return nil, err
		}
		subdomainID, err := parseUUID(row, "subdomain_id")
		if err != nil {
			return nil, err
		}
		out = append(out, &types.Competency{
			CompetencyID:        id,
			SubdomainID:         subdomainID,
			CompetencyCode:      row["competency_code"],
			CompetencyTitle:     row["competency_title"],
			CompetencyStatement: optional(row["competency_statement"]),
			SortOrder:           parseInt(row["sort_order"]),
		})
	}
	return out, nil
}

func loadCriteria(dir string) ([]*types.PerformanceCriteria, error) {
	rows, err := readCSV(dir, "performance_criteria.csv")
	if err != nil {
		return nil, err
	}
	out := make([]*types.PerformanceCriteria, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row, "criteria_id")
		if err != nil {
			return nil, err
		}
		competencyID, err := parseUUID(row, "competency_id")
		if err != nil {
			return nil, err
		}
		out = append(out, &types.PerformanceCriteria{
			CriteriaID:   id,
			CompetencyID: competencyID,
			CriteriaText: row["criteria_text"],
			SortOrder:    parseInt(row["sort_order"]),
		})
	}
	return out, nil
}

func loadRoles(dir string) ([]*types.Role, error) {
	rows, err := readCSV(dir, "roles.csv")
	if err != nil {
		return nil, err
	}
	out := make([]*types.Role, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row, "role_id")
		if err != nil {
			return nil, err
		}
		out = append(out, &types.Role{
			RoleID:          id,
			RoleCode:        row["role_code"],
			RoleTitle:       row["role_title"],
			RoleType:        row["role_type"],
			RoleDescription: optional(row["role_description"]),
		})
	}
	return out, nil
}

func loadMappings(dir string) ([]*types.RoleCompetency, error) {
	rows, err := readCSV(dir, "role_competencies.csv")
	if err != nil {
		return nil, err
	}
	out := make([]*types.RoleCompetency, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row, "role_competency_id")
		if err != nil {
			return nil, err
		}
		roleID, err := parseUUID(row, "role_id")
		if err != nil {
			return nil, err
		}
		competencyID, err := parseUUID(row, "competency_id")
		if err != nil {
			return nil, err
		}
		out = append(out, &types.RoleCompetency{
			RoleCompetencyID: id,
			RoleID:           roleID,
			CompetencyID:     competencyID,
			ProficiencyLevel: row["proficiency_level"],
			IsRequired:       row["is_required"] == "True",
		})
	}
	return out, nil
}

func parseUUID(row map[string]string, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(row[key])
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse %s %q: %w", key, row[key], err)
	}
	return id, nil
}

func parseInt(raw string) int {
	n, _ := strconv.Atoi(raw)
	return n
}

func optional(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
