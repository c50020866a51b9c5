// internal/service/dispatch_service.go
package service

import (
    "log"
    "strconv"
    "strings"
    "time"

    appErrors "github.com/brightcart/mailblast-backend/internal/errors"
    "github.com/brightcart/mailblast-backend/internal/mailer"
    "github.com/brightcart/mailblast-backend/internal/model"
    "github.com/brightcart/mailblast-backend/internal/repository"
)

// CampaignRenderer produces the per-recipient HTML body.
type CampaignRenderer interface {
    Render(c *model.Campaign, recipient string) (string, error)
}

// DispatchService runs the full campaign dispatch: resolve recipients,
// render+send per recipient, record the outcome transactionally.
type DispatchService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    ContactRepo  repository.ContactRepositoryInterface
    Mailer       mailer.Mailer
    Renderer     CampaignRenderer
}

// DispatchResult is the summary returned to the caller after a dispatch.
type DispatchResult struct {
    CampaignID       int      `json:"campaign_id"`
    Delivered        int      `json:"delivered"`
    Failed           int      `json:"failed"`
    FailedRecipients []string `json:"failed_recipients"`
}

// SendNowInput is the direct-send payload: campaign content plus either
// an explicit recipient list or a group reference.
type SendNowInput struct {
    Subject    string
    Body       string
    ImageURL   string
    ActionURL  string
    GroupRef   string
    Recipients []string
    Data       *model.CampaignData
}

// ====================== Recipient resolution ======================

// ResolveRecipients expands the dispatch target into concrete emails.
// An explicit list wins over the group reference; "all" means every
// contact. No deduplication is performed.
func (s *DispatchService) ResolveRecipients(groupRef string, explicit []string) ([]string, error) {
    if len(explicit) > 0 {
        recipients := []string{}
        for _, email := range explicit {
            email = strings.TrimSpace(email)
            if email != "" {
                recipients = append(recipients, email)
            }
        }
        return recipients, nil
    }

    switch {
    case groupRef == model.GroupAll:
        return s.ContactRepo.ListAllEmails()
    case groupRef != "":
        groupID, err := strconv.Atoi(groupRef)
        if err != nil {
            return nil, appErrors.NewNoRecipients(groupRef)
        }
        return s.ContactRepo.ListGroupEmails(groupID)
    }
    return []string{}, nil
}

// ====================== Dispatch ======================

// SendNow creates a draft campaign from the input and dispatches it
// immediately.
func (s *DispatchService) SendNow(in SendNowInput) (*DispatchResult, error) {
    recipients, err := s.ResolveRecipients(in.GroupRef, in.Recipients)
    if err != nil {
        return nil, err
    }
    if len(recipients) == 0 {
        return nil, appErrors.NewNoRecipients(in.GroupRef)
    }

    campaign := &model.Campaign{
        Subject:   in.Subject,
        Body:      in.Body,
        ImageURL:  in.ImageURL,
        ActionURL: in.ActionURL,
        GroupRef:  in.GroupRef,
        Data:      in.Data,
        Status:    model.StatusDraft,
    }
    if err := s.CampaignRepo.Create(campaign); err != nil {
        return nil, err
    }

    return s.dispatch(campaign, recipients)
}

// SendDraft dispatches an existing draft. When no explicit recipient
// list is given the campaign's own group reference is resolved.
func (s *DispatchService) SendDraft(campaignID int, recipients []string) (*DispatchResult, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }
    if campaign.Status != model.StatusDraft && campaign.Status != model.StatusScheduled {
        return nil, appErrors.NewInvalidCampaignStatus(campaignID, campaign.Status)
    }

    resolved, err := s.ResolveRecipients(campaign.GroupRef, recipients)
    if err != nil {
        return nil, err
    }
    if len(resolved) == 0 {
        return nil, appErrors.NewNoRecipients(campaign.GroupRef)
    }

    return s.dispatch(campaign, resolved)
}

// dispatch is the delivery loop plus the outcome transaction. Strictly
// sequential: each recipient is rendered and sent before the next one
// starts, and no single failure aborts the batch. Outcomes are
// collected as an explicit success/failure partition.
func (s *DispatchService) dispatch(campaign *model.Campaign, recipients []string) (*DispatchResult, error) {
    delivered := []string{}
    failed := []model.FailedRecipient{}

    for _, recipient := range recipients {
        html, err := s.Renderer.Render(campaign, recipient)
        if err != nil {
            log.Println("⚠️ failed to render for", recipient, ":", err)
            failed = append(failed, model.FailedRecipient{Email: recipient, Reason: err.Error()})
            continue
        }

        if err := s.Mailer.Send(recipient, campaign.Subject, html); err != nil {
            log.Println("⚠️ failed to send to", recipient, ":", err)
            failed = append(failed, model.FailedRecipient{Email: recipient, Reason: err.Error()})
            continue
        }

        delivered = append(delivered, recipient)
    }

    // Commit status + counters + events together. If this fails the
    // campaign stays in its prior status; mail already handed to the
    // transport is not undone.
    if err := s.CampaignRepo.RecordDispatchOutcome(campaign.ID, delivered, failed, time.Now()); err != nil {
        return nil, err
    }

    result := &DispatchResult{
        CampaignID:       campaign.ID,
        Delivered:        len(delivered),
        Failed:           len(failed),
        FailedRecipients: []string{},
    }
    for _, f := range failed {
        result.FailedRecipients = append(result.FailedRecipients, f.Email)
    }
    return result, nil
}
