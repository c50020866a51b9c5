// internal/model/delivery_event.go
package model

import "time"

// Delivery event types. delivered/failed are written by the dispatch
// outcome transaction; opened/clicked come in later through the
// tracking endpoints.
const (
    EventDelivered = "delivered"
    EventFailed    = "failed"
    EventOpened    = "opened"
    EventClicked   = "clicked"
)

// DeliveryEvent is an append-only per-recipient outcome record.
// Rows are inserted once and never mutated.
type DeliveryEvent struct {
    ID         int       `db:"id" json:"id"`
    CampaignID int       `db:"campaign_id" json:"campaign_id"`
    Email      string    `db:"email" json:"email"`
    EventType  string    `db:"event_type" json:"event_type"`
    Error      string    `db:"error,omitempty" json:"error,omitempty"`
    URL        string    `db:"url,omitempty" json:"url,omitempty"`
    CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FailedRecipient pairs a recipient with the error that stopped
// their send. Collected by the delivery loop, persisted as a
// failed event.
type FailedRecipient struct {
    Email  string `json:"email"`
    Reason string `json:"reason"`
}
