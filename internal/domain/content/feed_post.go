package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Platform names the social network a feed post was ingested from
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformX         Platform = "x"
)

// IsValid checks if the platform is supported
func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformX:
		return true
	}
	return false
}

// FeedPost mirrors a social-media post on the storefront. Posts are keyed by
// (platform, platform post id) per tenant so re-ingestion stays idempotent.
type FeedPost struct {
	shared.TenantAggregateRoot
	Platform       Platform `gorm:"type:varchar(20);not null;uniqueIndex:idx_feed_tenant_platform_post,priority:2"`
	PlatformPostID string   `gorm:"type:varchar(100);not null;uniqueIndex:idx_feed_tenant_platform_post,priority:3"`
	Caption        string   `gorm:"type:text"`
	MediaURL       string   `gorm:"type:varchar(500);not null"`
	Permalink      string   `gorm:"type:varchar(500)"`
	PostedAt       time.Time
	IsVisible      bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (FeedPost) TableName() string {
	return "feed_posts"
}

// NewFeedPost ingests a platform post
func NewFeedPost(tenantID uuid.UUID, platform Platform, platformPostID, caption, mediaURL string, postedAt time.Time) (*FeedPost, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unsupported platform")
	}
	if strings.TrimSpace(platformPostID) == "" {
		return nil, shared.NewDomainError("INVALID_POST_ID", "Platform post ID cannot be empty")
	}
	if strings.TrimSpace(mediaURL) == "" {
		return nil, shared.NewDomainError("INVALID_MEDIA_URL", "Media URL cannot be empty")
	}
	if postedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_POSTED_AT", "Posted timestamp is required")
	}

	return &FeedPost{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Platform:            platform,
		PlatformPostID:      strings.TrimSpace(platformPostID),
		Caption:             caption,
		MediaURL:            strings.TrimSpace(mediaURL),
		PostedAt:            postedAt,
		IsVisible:           true,
	}, nil
}

// UpdateCaption refreshes the caption after re-ingestion
func (f *FeedPost) UpdateCaption(caption string) {
	f.Caption = caption
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// Show makes the post visible on the storefront feed
func (f *FeedPost) Show() {
	f.IsVisible = true
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// Hide removes the post from the storefront feed
func (f *FeedPost) Hide() {
	f.IsVisible = false
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}
