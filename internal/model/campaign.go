// internal/model/campaign.go
package model

import "time"

// Campaign statuses. A campaign starts as draft and becomes published
// exactly once, at the end of a dispatch attempt. Scheduled campaigns
// are picked up by the queue worker and dispatched the same way.
const (
    StatusDraft     = "draft"
    StatusScheduled = "scheduled"
    StatusPublished = "published"
)

// GroupAll is the reserved pseudo-group meaning every contact.
const GroupAll = "all"

// CampaignData is the optional promotional payload attached to a campaign.
type CampaignData struct {
    PromoText        string   `json:"promo_text,omitempty"`
    DiscountCode     string   `json:"discount_code,omitempty"`
    FeaturedProducts []string `json:"featured_products,omitempty"`
}

type Campaign struct {
    ID          int           `db:"id" json:"id"`
    Subject     string        `db:"subject" json:"subject"`
    Body        string        `db:"body" json:"body"`
    ImageURL    string        `db:"image_url" json:"image_url,omitempty"`
    ActionURL   string        `db:"action_url" json:"action_url,omitempty"`
    Data        *CampaignData `db:"data" json:"data,omitempty"`
    Status      string        `db:"status" json:"status"`
    GroupRef    string        `db:"group_ref" json:"group_ref,omitempty"`
    SentCount   int           `db:"sent_count" json:"sent_count"`
    FailedCount int           `db:"failed_count" json:"failed_count"`
    SentAt      *time.Time    `db:"sent_at" json:"sent_at,omitempty"`
    CreatedAt   time.Time     `db:"created_at" json:"created_at"`
    UpdatedAt   *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}
