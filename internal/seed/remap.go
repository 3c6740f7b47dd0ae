package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
)

// RemapResult summarizes a role_competencies re-key run.
type RemapResult struct {
	Remapped int
	Skipped  int
	Output   string
}

// Remap re-keys an old role_competencies.csv onto a regenerated catalog.
// Old UUIDs are resolved to role_code / competency_code via the old
// catalog files, then matched by code against the new catalog's UUIDs.
// Rows that fail either lookup are logged and skipped. The rewritten
// file lands in newDir with fresh link UUIDs.
func Remap(log *logger.Logger, oldDir, newDir string) (*RemapResult, error) {
	oldMappings, err := readCSV(oldDir, "role_competencies.csv")
	if err != nil {
		return nil, err
	}
	oldCompByID, err := codeIndex(oldDir, "competencies.csv", "competency_id", "competency_code")
	if err != nil {
		return nil, err
	}
	newCompByCode, err := codeIndex(newDir, "competencies.csv", "competency_code", "competency_id")
	if err != nil {
		return nil, err
	}
	oldRoleByID, err := codeIndex(oldDir, "roles.csv", "role_id", "role_code")
	if err != nil {
		return nil, err
	}
	newRoleByCode, err := codeIndex(newDir, "roles.csv", "role_code", "role_id")
	if err != nil {
		return nil, err
	}

	result := &RemapResult{Output: filepath.Join(newDir, "role_competencies.csv")}
	lines := []string{"role_competency_id,role_id,competency_id,proficiency_level,is_required"}

	for _, old := range oldMappings {
		competencyCode, ok := oldCompByID[old["competency_id"]]
		if !ok {
			log.Warn("Competency not found in old data", "competency_id", old["competency_id"])
			result.Skipped++
			continue
		}
		roleCode, ok := oldRoleByID[old["role_id"]]
		if !ok {
			log.Warn("Role not found in old data", "role_id", old["role_id"])
			result.Skipped++
			continue
		}
		newCompetencyID, ok := newCompByCode[competencyCode]
		if !ok {
			log.Warn("Competency code not found in new data", "competency_code", competencyCode)
			result.Skipped++
			continue
		}
		newRoleID, ok := newRoleByCode[roleCode]
		if !ok {
			log.Warn("Role code not found in new data", "role_code", roleCode)
			result.Skipped++
			continue
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s",
			uuid.New(), newRoleID, newCompetencyID,
			old["proficiency_level"], old["is_required"]))
		result.Remapped++
	}

	if err := os.WriteFile(result.Output, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", result.Output, err)
	}
	return result, nil
}

// codeIndex builds a one-column lookup from a catalog CSV.
func codeIndex(dir, filename, keyCol, valCol string) (map[string]string, error) {
	rows, err := readCSV(dir, filename)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(rows))
	for _, row := range rows {
		if row[keyCol] != "" {
			index[row[keyCol]] = row[valCol]
		}
	}
	return index, nil
}
