package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightcart/mailblast-backend/internal/handler"
	"github.com/brightcart/mailblast-backend/internal/model"
)

// MockEventRecorder stores inserted events in memory
type MockEventRecorder struct {
	events []*model.DeliveryEvent
	err    error
}

func (m *MockEventRecorder) Insert(e *model.DeliveryEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func TestOpenRecordsEventAndServesPixel(t *testing.T) {
	rec := &MockEventRecorder{}
	h := &handler.TrackingHandler{Events: rec}

	req := httptest.NewRequest("GET", "/track/open?campaign_id=42&email=user%2Btag%40example.com", nil)
	w := httptest.NewRecorder()
	h.Open(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/gif" {
		t.Errorf("expected image/gif, got %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("expected pixel bytes in response")
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.CampaignID != 42 || e.Email != "user+tag@example.com" || e.EventType != model.EventOpened {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestOpenMissingParamsStillServesPixel(t *testing.T) {
	rec := &MockEventRecorder{}
	h := &handler.TrackingHandler{Events: rec}

	req := httptest.NewRequest("GET", "/track/open", nil)
	w := httptest.NewRecorder()
	h.Open(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
	if len(rec.events) != 0 {
		t.Errorf("expected no event recorded, got %d", len(rec.events))
	}
}

func TestClickRecordsEventAndRedirects(t *testing.T) {
	rec := &MockEventRecorder{}
	h := &handler.TrackingHandler{Events: rec}

	target := "https://shop.example.com/sale?ref=email"
	req := httptest.NewRequest("GET", "/track/click?campaign_id=42&email=a%40x.com&url="+
		"https%3A%2F%2Fshop.example.com%2Fsale%3Fref%3Demail", nil)
	w := httptest.NewRecorder()
	h.Click(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != target {
		t.Errorf("expected redirect to %s, got %s", target, loc)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.EventType != model.EventClicked || e.URL != target || e.Email != "a@x.com" {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestClickWithoutTargetRedirectsHome(t *testing.T) {
	rec := &MockEventRecorder{}
	h := &handler.TrackingHandler{Events: rec}

	req := httptest.NewRequest("GET", "/track/click?campaign_id=42&email=a%40x.com", nil)
	w := httptest.NewRecorder()
	h.Click(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %s", loc)
	}
}
