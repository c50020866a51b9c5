// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    appErrors "github.com/brightcart/mailblast-backend/internal/errors"
    "github.com/brightcart/mailblast-backend/internal/model"
    "github.com/brightcart/mailblast-backend/internal/queue"
    "github.com/brightcart/mailblast-backend/internal/service"

    "github.com/go-chi/chi/v5"
)

type CampaignController struct {
    CampaignService *service.CampaignService
    DispatchService *service.DispatchService
    Queue           queue.Publisher
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Subject   string              `json:"subject"`
        Body      string              `json:"body"`
        ImageURL  string              `json:"image_url"`
        ActionURL string              `json:"action_url"`
        GroupRef  string              `json:"group_ref"`
        Data      *model.CampaignData `json:"data"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.Subject == "" {
        http.Error(w, "subject is required", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.CreateCampaign(service.CreateCampaignInput{
        Subject:   body.Subject,
        Body:      body.Body,
        ImageURL:  body.ImageURL,
        ActionURL: body.ActionURL,
        GroupRef:  body.GroupRef,
        Data:      body.Data,
    })
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    status := r.URL.Query().Get("status")

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, status)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination,
    })
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    details, err := c.CampaignService.GetCampaignDetailsWithStats(id)
    if err != nil {
        writeDispatchError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(details)
}

// SendNow creates a campaign and dispatches it in one call.
func (c *CampaignController) SendNow(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Subject    string              `json:"subject"`
        Body       string              `json:"body"`
        ImageURL   string              `json:"image_url"`
        ActionURL  string              `json:"action_url"`
        GroupRef   string              `json:"group_ref"`
        Recipients []string            `json:"recipients"`
        Data       *model.CampaignData `json:"data"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.Subject == "" {
        http.Error(w, "subject is required", http.StatusBadRequest)
        return
    }

    result, err := c.DispatchService.SendNow(service.SendNowInput{
        Subject:    body.Subject,
        Body:       body.Body,
        ImageURL:   body.ImageURL,
        ActionURL:  body.ActionURL,
        GroupRef:   body.GroupRef,
        Recipients: body.Recipients,
        Data:       body.Data,
    })
    if err != nil {
        writeDispatchError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(result)
}

// SendDraft dispatches an existing draft campaign.
func (c *CampaignController) SendDraft(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    var body struct {
        Recipients []string `json:"recipients"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    result, err := c.DispatchService.SendDraft(id, body.Recipients)
    if err != nil {
        writeDispatchError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(result)
}

// ScheduleCampaign marks a draft as scheduled and hands it to the
// worker through the dispatch queue.
func (c *CampaignController) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    if err := c.CampaignService.ScheduleCampaign(id); err != nil {
        writeDispatchError(w, err)
        return
    }

    if err := c.Queue.PublishDispatch(id); err != nil {
        log.Println("⚠️ failed to enqueue dispatch for campaign", id, ":", err)
        http.Error(w, "failed to enqueue dispatch", http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": id,
        "status":      model.StatusScheduled,
    })
}

// GetCampaignEvents lists a campaign's delivery events.
func (c *CampaignController) GetCampaignEvents(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    events, err := c.CampaignService.ListCampaignEvents(id)
    if err != nil {
        writeDispatchError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{"data": events})
}

// writeDispatchError maps typed service errors onto HTTP statuses.
func writeDispatchError(w http.ResponseWriter, err error) {
    var notFound *appErrors.ErrCampaignNotFound
    var groupNotFound *appErrors.ErrGroupNotFound
    var noRecipients *appErrors.ErrNoRecipients
    var badStatus *appErrors.ErrInvalidCampaignStatus

    switch {
    case errors.As(err, &notFound), errors.As(err, &groupNotFound):
        http.Error(w, err.Error(), http.StatusNotFound)
    case errors.As(err, &noRecipients):
        http.Error(w, err.Error(), http.StatusBadRequest)
    case errors.As(err, &badStatus):
        http.Error(w, err.Error(), http.StatusConflict)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}
