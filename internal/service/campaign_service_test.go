package service_test

import (
	"testing"
	"time"

	"github.com/brightcart/mailblast-backend/internal/model"
	"github.com/brightcart/mailblast-backend/internal/service"
)

// Mock Campaign Repository for pagination
type MockCampaignPaginationRepo struct{}

func (m *MockCampaignPaginationRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	all := []*model.Campaign{
		{ID: 5, Subject: "C5"},
		{ID: 4, Subject: "C4"},
		{ID: 3, Subject: "C3"},
		{ID: 2, Subject: "C2"},
		{ID: 1, Subject: "C1"},
	}

	start := offset
	end := offset + limit

	if start >= len(all) {
		return []*model.Campaign{}, len(all), nil
	}
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], len(all), nil
}

// Stub implementations to satisfy the interface
func (m *MockCampaignPaginationRepo) Create(c *model.Campaign) error {
	c.ID = 999 // fake ID
	c.CreatedAt = time.Now()
	return nil
}

func (m *MockCampaignPaginationRepo) GetByID(id int) (*model.Campaign, error) {
	return &model.Campaign{ID: id, Subject: "Mock", Status: model.StatusDraft}, nil
}

func (m *MockCampaignPaginationRepo) UpdateStatus(id int, status string) error {
	return nil
}

func (m *MockCampaignPaginationRepo) RecordDispatchOutcome(campaignID int, delivered []string, failed []model.FailedRecipient, sentAt time.Time) error {
	return nil
}

func (m *MockCampaignPaginationRepo) GetEventStats(campaignID int) (map[string]int, error) {
	return map[string]int{model.EventDelivered: 3, model.EventFailed: 1}, nil
}

func TestPagination(t *testing.T) {
	svc := &service.CampaignService{
		CampaignRepo: &MockCampaignPaginationRepo{},
	}

	pageSize := 2

	page1, pagination1, _ := svc.ListCampaigns(1, pageSize, "")
	page2, _, _ := svc.ListCampaigns(2, pageSize, "")

	expectedTotal := 5
	if pagination1["total_count"] != expectedTotal {
		t.Errorf("expected total_count %d, got %d", expectedTotal, pagination1["total_count"])
	}

	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("expected full pages, got %d and %d", len(page1), len(page2))
	}

	// Check descending order
	if page1[0].ID <= page1[1].ID {
		t.Errorf("expected descending order in page 1")
	}

	if pagination1["total_pages"] != 3 {
		t.Errorf("expected 3 total pages, got %d", pagination1["total_pages"])
	}
}

// MockEventLister returns a fixed event list
type MockEventLister struct {
	events []model.DeliveryEvent
}

func (m *MockEventLister) ListByCampaign(campaignID int) ([]model.DeliveryEvent, error) {
	return m.events, nil
}

func TestScheduleCampaignOnlyDrafts(t *testing.T) {
	repo := newMockCampaignRepo()
	repo.campaigns[1] = &model.Campaign{ID: 1, Subject: "Later", Status: model.StatusDraft}
	repo.campaigns[2] = &model.Campaign{ID: 2, Subject: "Done", Status: model.StatusPublished}

	svc := &service.CampaignService{CampaignRepo: repo}

	if err := svc.ScheduleCampaign(1); err != nil {
		t.Fatalf("unexpected error scheduling draft: %v", err)
	}
	if repo.statusUpdates[1] != model.StatusScheduled {
		t.Errorf("expected scheduled status update, got %q", repo.statusUpdates[1])
	}

	if err := svc.ScheduleCampaign(2); err == nil {
		t.Fatal("expected error scheduling a published campaign")
	}
	if _, ok := repo.statusUpdates[2]; ok {
		t.Error("published campaign must not receive a status update")
	}
}

func TestListCampaignEvents(t *testing.T) {
	repo := newMockCampaignRepo()
	repo.campaigns[7] = &model.Campaign{ID: 7, Subject: "Sent", Status: model.StatusPublished}

	lister := &MockEventLister{events: []model.DeliveryEvent{
		{ID: 1, CampaignID: 7, Email: "a@x.com", EventType: model.EventDelivered},
		{ID: 2, CampaignID: 7, Email: "b@x.com", EventType: model.EventFailed},
	}}
	svc := &service.CampaignService{CampaignRepo: repo, EventRepo: lister}

	events, err := svc.ListCampaignEvents(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// missing campaign surfaces not-found before touching the lister
	if _, err := svc.ListCampaignEvents(404); err == nil {
		t.Fatal("expected error for missing campaign")
	}
}

func TestGetCampaignDetailsWithStats(t *testing.T) {
	svc := &service.CampaignService{
		CampaignRepo: &MockCampaignPaginationRepo{},
	}

	details, err := svc.GetCampaignDetailsWithStats(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.ID != 5 {
		t.Errorf("expected campaign 5, got %d", details.ID)
	}
	if details.Stats[model.EventDelivered] != 3 {
		t.Errorf("expected 3 delivered in stats, got %d", details.Stats[model.EventDelivered])
	}
}
