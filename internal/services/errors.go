package services

import "errors"

var (
	// ErrDuplicateRoleCode is returned when a create or update would
	// give two roles the same role_code.
	ErrDuplicateRoleCode = errors.New("role code already exists")

	// ErrInvalidRoleType is returned when a role payload carries a
	// role_type outside the accepted set.
	ErrInvalidRoleType = errors.New("invalid role type")

	// ErrInvalidProficiency is returned when a mapping payload carries
	// a proficiency_level outside the accepted set.
	ErrInvalidProficiency = errors.New("invalid proficiency level")
)

// MissingCompetenciesError reports competency IDs that a mapping request
// referenced but the catalog does not contain.
type MissingCompetenciesError struct {
	MissingIDs []string
}

func (e *MissingCompetenciesError) Error() string {
	return "some competency ids were not found"
}
