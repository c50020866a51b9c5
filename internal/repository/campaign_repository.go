package repository

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "time"

    appErrors "github.com/brightcart/mailblast-backend/internal/errors"
    "github.com/brightcart/mailblast-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    // Campaign CRUD
    ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
    GetByID(id int) (*model.Campaign, error)
    UpdateStatus(campaignID int, status string) error
    Create(c *model.Campaign) error

    // Dispatch outcome
    RecordDispatchOutcome(campaignID int, delivered []string, failed []model.FailedRecipient, sentAt time.Time) error
    GetEventStats(campaignID int) (map[string]int, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusDraft
    }

    var data interface{}
    if c.Data != nil {
        raw, err := json.Marshal(c.Data)
        if err != nil {
            return fmt.Errorf("marshal campaign data: %w", err)
        }
        data = raw
    }

    query := `
        INSERT INTO campaigns (subject, body, image_url, action_url, data, status, group_ref, sent_count, failed_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.Subject, c.Body, c.ImageURL, c.ActionURL, data, c.Status, c.GroupRef, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
    query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
    _, err := r.DB.Exec(query, status, time.Now(), campaignID)
    return err
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `
        SELECT id, subject, body, image_url, action_url, data, status, group_ref, sent_count, failed_count, sent_at, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
    var c model.Campaign
    var data sql.NullString
    err := r.DB.QueryRow(query, id).Scan(
        &c.ID, &c.Subject, &c.Body, &c.ImageURL, &c.ActionURL, &data,
        &c.Status, &c.GroupRef, &c.SentCount, &c.FailedCount,
        &c.SentAt, &c.CreatedAt, &c.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    if data.Valid && data.String != "" {
        c.Data = &model.CampaignData{}
        if err := json.Unmarshal([]byte(data.String), c.Data); err != nil {
            return nil, fmt.Errorf("unmarshal campaign data: %w", err)
        }
    }
    return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `SELECT id, subject, status, group_ref, sent_count, failed_count, sent_at, created_at, updated_at FROM campaigns WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if status != "" {
        query += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, status)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Campaign{}
        if err := rows.Scan(&c.ID, &c.Subject, &c.Status, &c.GroupRef, &c.SentCount, &c.FailedCount, &c.SentAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }

    // Count total
    countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
    argsCount := []interface{}{}
    if status != "" {
        countQuery += " AND status=$1"
        argsCount = append(argsCount, status)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

// ====================== Dispatch outcome ======================

// RecordDispatchOutcome commits the result of one dispatch attempt in a
// single transaction: the campaign becomes published with its counters
// and sent timestamp set, and one delivery event is inserted per
// recipient outcome. Either everything lands or the campaign stays in
// its prior status.
func (r *CampaignRepository) RecordDispatchOutcome(campaignID int, delivered []string, failed []model.FailedRecipient, sentAt time.Time) error {
    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    updateQuery := `
        UPDATE campaigns
        SET status=$1, sent_count=$2, failed_count=$3, sent_at=$4, updated_at=NOW()
        WHERE id=$5
    `
    res, err := tx.Exec(updateQuery, model.StatusPublished, len(delivered), len(failed), sentAt, campaignID)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return appErrors.NewCampaignNotFound(campaignID)
    }

    insertQuery := `
        INSERT INTO delivery_events (campaign_id, email, event_type, error, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
    for _, email := range delivered {
        if _, err := tx.Exec(insertQuery, campaignID, email, model.EventDelivered, "", sentAt); err != nil {
            return err
        }
    }
    for _, f := range failed {
        if _, err := tx.Exec(insertQuery, campaignID, f.Email, model.EventFailed, f.Reason, sentAt); err != nil {
            return err
        }
    }

    return tx.Commit()
}

func (r *CampaignRepository) GetEventStats(campaignID int) (map[string]int, error) {
    query := `SELECT event_type, COUNT(*) FROM delivery_events WHERE campaign_id=$1 GROUP BY event_type`
    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{
        model.EventDelivered: 0,
        model.EventFailed:    0,
        model.EventOpened:    0,
        model.EventClicked:   0,
    }
    for rows.Next() {
        var eventType string
        var count int
        if err := rows.Scan(&eventType, &count); err != nil {
            return nil, err
        }
        stats[eventType] = count
    }
    return stats, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
