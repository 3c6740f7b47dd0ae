package repos

import "github.com/google/uuid"

// Filter criteria are explicit structs consumed by a single query builder
// per repo, so optional conditions never turn into ad hoc string assembly.

type CompetencyFilter struct {
	Search      string
	DomainID    uuid.UUID
	SubdomainID uuid.UUID
}

type RoleFilter struct {
	Search string
	Type   string
}

type ModuleFilter struct {
	Search   string
	Provider string
}
