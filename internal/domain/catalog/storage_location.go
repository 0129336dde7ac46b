package catalog

import (
	"strings"
	"time"

	"github.com/shoplite/backend/internal/domain/shared"
)

// StorageLocation represents a named shelf/area products can be linked to.
// Products and locations form a many-to-many relation used by search.
type StorageLocation struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Remark string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (StorageLocation) TableName() string {
	return "storage_locations"
}

// NewStorageLocation creates a new storage location
func NewStorageLocation(name, remark string) (*StorageLocation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 100 characters")
	}

	return &StorageLocation{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Remark:     strings.TrimSpace(remark),
	}, nil
}

// Update changes the location's name and remark
func (l *StorageLocation) Update(name, remark string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}

	l.Name = strings.TrimSpace(name)
	l.Remark = strings.TrimSpace(remark)
	l.UpdatedAt = time.Now()

	return nil
}
