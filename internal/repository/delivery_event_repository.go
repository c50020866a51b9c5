package repository

import (
	"database/sql"
	"time"

	"github.com/brightcart/mailblast-backend/internal/model"
)

// DeliveryEventRecorder is the write-side used by the tracking handlers.
type DeliveryEventRecorder interface {
	Insert(e *model.DeliveryEvent) error
}

// DeliveryEventLister is the read-side used by the campaign service.
type DeliveryEventLister interface {
	ListByCampaign(campaignID int) ([]model.DeliveryEvent, error)
}

type DeliveryEventRepository struct {
	DB *sql.DB
}

// Insert appends a single event. Used by the tracking endpoints for
// opened/clicked; send-time outcomes go through the campaign
// repository's dispatch-outcome transaction instead.
func (r *DeliveryEventRepository) Insert(e *model.DeliveryEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `
        INSERT INTO delivery_events (campaign_id, email, event_type, error, url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, e.CampaignID, e.Email, e.EventType, e.Error, e.URL, e.CreatedAt).Scan(&e.ID)
}

// ListByCampaign returns all events for a campaign, oldest first.
func (r *DeliveryEventRepository) ListByCampaign(campaignID int) ([]model.DeliveryEvent, error) {
	query := `
        SELECT id, campaign_id, email, event_type, COALESCE(error, ''), COALESCE(url, ''), created_at
        FROM delivery_events
        WHERE campaign_id=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.DeliveryEvent{}
	for rows.Next() {
		var e model.DeliveryEvent
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.Email, &e.EventType, &e.Error, &e.URL, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

var _ DeliveryEventRecorder = (*DeliveryEventRepository)(nil)
var _ DeliveryEventLister = (*DeliveryEventRepository)(nil)
