package types

import (
	"time"

	"github.com/google/uuid"
)

type Domain struct {
	DomainID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"domain_id"`
	DomainCode  string    `gorm:"uniqueIndex;not null" json:"domain_code"`
	DomainName  string    `gorm:"not null" json:"domain_name"`
	DomainTitle string    `gorm:"not null" json:"domain_title"`
	SortOrder   int       `gorm:"not null" json:"sort_order"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Domain) TableName() string { return "domains" }

type Subdomain struct {
	SubdomainID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"subdomain_id"`
	DomainID       uuid.UUID `gorm:"type:uuid;not null;index" json:"domain_id"`
	Domain         *Domain   `gorm:"foreignKey:DomainID;references:DomainID" json:"domain,omitempty"`
	SubdomainCode  string    `gorm:"uniqueIndex;not null" json:"subdomain_code"`
	SubdomainName  string    `gorm:"not null" json:"subdomain_name"`
	SubdomainTitle string    `gorm:"not null" json:"subdomain_title"`
	SortOrder      int       `gorm:"not null" json:"sort_order"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Subdomain) TableName() string { return "subdomains" }
