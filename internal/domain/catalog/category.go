package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Category is a node in the tenant's category tree. A category cannot be
// deleted while child categories exist.
type Category struct {
	shared.TenantAggregateRoot
	Name     string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_tenant_name,priority:2"`
	Slug     string     `gorm:"type:varchar(120);not null;uniqueIndex:idx_category_tenant_slug,priority:2"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	ImageURL string     `gorm:"type:varchar(500)"`
	IsActive bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. The slug is derived from the name.
func NewCategory(tenantID uuid.UUID, name string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	slug := valueobject.Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name produces an empty slug")
	}

	category := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Slug:                slug,
		ParentID:            parentID,
		IsActive:            true,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category's name and image
func (c *Category) Update(name, imageURL string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if len(imageURL) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	c.Name = name
	c.ImageURL = imageURL
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// SetSlug overrides the derived slug
func (c *Category) SetSlug(slug string) error {
	if !valueobject.IsValidSlug(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug must contain only lowercase letters, numbers, and single hyphens")
	}

	c.Slug = slug
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetParent moves the category under a new parent. A category cannot be its
// own parent.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate makes the category visible
func (c *Category) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate hides the category from the public catalog
func (c *Category) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
