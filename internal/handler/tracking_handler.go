// internal/handler/tracking_handler.go
package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/brightcart/mailblast-backend/internal/model"
	"github.com/brightcart/mailblast-backend/internal/repository"
)

// trackingPixel is a 1x1 transparent GIF.
var trackingPixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00,
	0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21,
	0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00,
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44,
	0x01, 0x00, 0x3b,
}

// TrackingHandler records opened/clicked events from the URLs embedded
// by the renderer. These arrive asynchronously, long after the dispatch
// that produced them finished.
type TrackingHandler struct {
	Events repository.DeliveryEventRecorder
}

// Open serves the tracking pixel and records an opened event. The pixel
// is returned even when recording fails; the recipient's mail client
// should never see an error.
func (h *TrackingHandler) Open(w http.ResponseWriter, r *http.Request) {
	campaignID, email := trackingParams(r)
	if campaignID > 0 && email != "" {
		err := h.Events.Insert(&model.DeliveryEvent{
			CampaignID: campaignID,
			Email:      email,
			EventType:  model.EventOpened,
		})
		if err != nil {
			log.Println("⚠️ failed to record open event:", err)
		}
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(trackingPixel)
}

// Click records a clicked event and forwards the user to the original
// destination preserved in the url parameter.
func (h *TrackingHandler) Click(w http.ResponseWriter, r *http.Request) {
	campaignID, email := trackingParams(r)
	target := r.URL.Query().Get("url")

	if campaignID > 0 && email != "" {
		err := h.Events.Insert(&model.DeliveryEvent{
			CampaignID: campaignID,
			Email:      email,
			EventType:  model.EventClicked,
			URL:        target,
		})
		if err != nil {
			log.Println("⚠️ failed to record click event:", err)
		}
	}

	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func trackingParams(r *http.Request) (int, string) {
	campaignID, _ := strconv.Atoi(r.URL.Query().Get("campaign_id"))
	return campaignID, r.URL.Query().Get("email")
}
