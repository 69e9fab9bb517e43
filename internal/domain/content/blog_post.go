package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// BlogPostStatus represents the publication state of a blog post
type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "draft"
	BlogPostStatusPublished BlogPostStatus = "published"
	BlogPostStatusArchived  BlogPostStatus = "archived"
)

// IsValid checks if the status is a valid BlogPostStatus
func (s BlogPostStatus) IsValid() bool {
	switch s {
	case BlogPostStatusDraft, BlogPostStatusPublished, BlogPostStatusArchived:
		return true
	}
	return false
}

// BlogPost is a tenant's blog article. Only published posts appear on the
// public site.
type BlogPost struct {
	shared.TenantAggregateRoot
	Title       string         `gorm:"type:varchar(200);not null"`
	Slug        string         `gorm:"type:varchar(220);not null;uniqueIndex:idx_blog_tenant_slug,priority:2"`
	Body        string         `gorm:"type:text"`
	Excerpt     string         `gorm:"type:varchar(500)"`
	CoverURL    string         `gorm:"type:varchar(500)"`
	Status      BlogPostStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	PublishedAt *time.Time
	ViewCount   int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BlogPost) TableName() string {
	return "blog_posts"
}

// NewBlogPost creates a new draft post. The slug is derived from the title.
func NewBlogPost(tenantID, authorID uuid.UUID, title, body string) (*BlogPost, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author ID cannot be empty")
	}

	slug := valueobject.Slugify(title)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title produces an empty slug")
	}

	return &BlogPost{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		Slug:                slug,
		Body:                body,
		Status:              BlogPostStatusDraft,
		AuthorID:            authorID,
	}, nil
}

// Update updates the post content. Published posts keep their slug so public
// links stay valid.
func (p *BlogPost) Update(title, body, excerpt string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if len(excerpt) > 500 {
		return shared.NewDomainError("INVALID_EXCERPT", "Excerpt cannot exceed 500 characters")
	}

	p.Title = title
	p.Body = body
	p.Excerpt = excerpt
	if p.Status == BlogPostStatusDraft {
		if slug := valueobject.Slugify(title); slug != "" {
			p.Slug = slug
		}
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCoverURL sets the cover image location
func (p *BlogPost) SetCoverURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Cover URL cannot exceed 500 characters")
	}

	p.CoverURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Publish makes the post publicly visible
func (p *BlogPost) Publish() error {
	if p.Status == BlogPostStatusPublished {
		return shared.NewDomainError("INVALID_STATE", "Post is already published")
	}
	if strings.TrimSpace(p.Body) == "" {
		return shared.NewDomainError("INVALID_STATE", "Cannot publish a post without a body")
	}

	p.Status = BlogPostStatusPublished
	now := time.Now()
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Archive removes the post from the public site without deleting it
func (p *BlogPost) Archive() error {
	if p.Status != BlogPostStatusPublished {
		return shared.NewDomainError("INVALID_STATE", "Only published posts can be archived")
	}

	p.Status = BlogPostStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsPublished returns true if the post is publicly visible
func (p *BlogPost) IsPublished() bool {
	return p.Status == BlogPostStatusPublished
}

// validateTitle validates the post title
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}
