// internal/service/campaign_service.go
package service

import (
    "log"
    "time"

    appErrors "github.com/brightcart/mailblast-backend/internal/errors"
    "github.com/brightcart/mailblast-backend/internal/model"
    "github.com/brightcart/mailblast-backend/internal/repository"
)

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    EventRepo    repository.DeliveryEventLister
}

type CampaignDetails struct {
    ID          int                 `json:"id"`
    Subject     string              `json:"subject"`
    Body        string              `json:"body"`
    ImageURL    string              `json:"image_url,omitempty"`
    ActionURL   string              `json:"action_url,omitempty"`
    Data        *model.CampaignData `json:"data,omitempty"`
    Status      string              `json:"status"`
    GroupRef    string              `json:"group_ref,omitempty"`
    SentCount   int                 `json:"sent_count"`
    FailedCount int                 `json:"failed_count"`
    SentAt      *time.Time          `json:"sent_at,omitempty"`
    CreatedAt   time.Time           `json:"created_at"`
    UpdatedAt   *time.Time          `json:"updated_at"`
    Stats       map[string]int      `json:"stats"`
}

type CreateCampaignInput struct {
    Subject   string
    Body      string
    ImageURL  string
    ActionURL string
    GroupRef  string
    Data      *model.CampaignData
}

func (s *CampaignService) CreateCampaign(in CreateCampaignInput) (*model.Campaign, error) {
    c := &model.Campaign{
        Subject:   in.Subject,
        Body:      in.Body,
        ImageURL:  in.ImageURL,
        ActionURL: in.ActionURL,
        GroupRef:  in.GroupRef,
        Data:      in.Data,
        Status:    model.StatusDraft,
    }
    if err := s.CampaignRepo.Create(c); err != nil {
        return nil, err
    }
    return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}

// ScheduleCampaign marks a draft as scheduled so the queue worker can
// pick it up. Only drafts can be scheduled.
func (s *CampaignService) ScheduleCampaign(campaignID int) error {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return err
    }
    if campaign.Status != model.StatusDraft {
        return appErrors.NewInvalidCampaignStatus(campaignID, campaign.Status)
    }
    return s.CampaignRepo.UpdateStatus(campaignID, model.StatusScheduled)
}

// ListCampaignEvents returns the campaign's delivery events, oldest
// first, after checking the campaign exists.
func (s *CampaignService) ListCampaignEvents(campaignID int) ([]model.DeliveryEvent, error) {
    if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
        return nil, err
    }
    return s.EventRepo.ListByCampaign(campaignID)
}

// GetCampaignDetailsWithStats returns the campaign plus its delivery
// event counts grouped by type.
func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        log.Println("Failed to fetch campaign:", err)
        return nil, err
    }

    stats, err := s.CampaignRepo.GetEventStats(campaignID)
    if err != nil {
        log.Println("Failed to fetch event stats:", err)
        return nil, err
    }

    return &CampaignDetails{
        ID:          campaign.ID,
        Subject:     campaign.Subject,
        Body:        campaign.Body,
        ImageURL:    campaign.ImageURL,
        ActionURL:   campaign.ActionURL,
        Data:        campaign.Data,
        Status:      campaign.Status,
        GroupRef:    campaign.GroupRef,
        SentCount:   campaign.SentCount,
        FailedCount: campaign.FailedCount,
        SentAt:      campaign.SentAt,
        CreatedAt:   campaign.CreatedAt,
        UpdatedAt:   campaign.UpdatedAt,
        Stats:       stats,
    }, nil
}
