package service_test

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brightcart/mailblast-backend/internal/model"
	"github.com/brightcart/mailblast-backend/internal/service"
)

var (
	pixelRe = regexp.MustCompile(`<img src="([^"]+)" width="1" height="1"`)
	ctaRe   = regexp.MustCompile(`<a href="([^"]+)"`)
)

func renderTestCampaign(t *testing.T, recipient string) string {
	t.Helper()
	renderer, err := service.NewRenderer("https://mail.example.com/")
	require.NoError(t, err)

	campaign := &model.Campaign{
		ID:        42,
		Subject:   "Big summer sale",
		Body:      "<p>Up to 50% off selected items.</p>",
		ImageURL:  "https://cdn.example.com/banner.png",
		ActionURL: "https://shop.example.com/sale?ref=email",
		Data: &model.CampaignData{
			PromoText:    "Hand-picked deals",
			DiscountCode: "SUMMER50",
		},
	}

	html, err := renderer.Render(campaign, recipient)
	require.NoError(t, err)
	return html
}

func TestRenderTrackingPixelRoundTrip(t *testing.T) {
	recipient := "user+tag@example.com"
	html := renderTestCampaign(t, recipient)

	m := pixelRe.FindStringSubmatch(html)
	require.NotNil(t, m, "rendered body must contain the tracking pixel")

	pixelURL, err := url.Parse(m[1])
	require.NoError(t, err)
	require.Equal(t, "/track/open", pixelURL.Path)

	// parsing the generated URL recovers campaign id and recipient exactly
	q := pixelURL.Query()
	require.Equal(t, "42", q.Get("campaign_id"))
	require.Equal(t, recipient, q.Get("email"))
}

func TestRenderClickURLRoundTrip(t *testing.T) {
	recipient := "user+tag@example.com"
	target := "https://shop.example.com/sale?ref=email"
	html := renderTestCampaign(t, recipient)

	m := ctaRe.FindStringSubmatch(html)
	require.NotNil(t, m, "rendered body must contain the CTA link")

	// href attributes are HTML-escaped by the template engine
	href := strings.ReplaceAll(m[1], "&amp;", "&")
	clickURL, err := url.Parse(href)
	require.NoError(t, err)
	require.Equal(t, "/track/click", clickURL.Path)

	q := clickURL.Query()
	require.Equal(t, "42", q.Get("campaign_id"))
	require.Equal(t, recipient, q.Get("email"))
	require.Equal(t, target, q.Get("url"), "original destination must be preserved")
}

func TestRenderPixelBeforeClosingBodyTag(t *testing.T) {
	html := renderTestCampaign(t, "a@x.com")

	pixelPos := pixelRe.FindStringIndex(html)
	require.NotNil(t, pixelPos)

	bodyClose := strings.Index(html, "</body>")
	require.Greater(t, bodyClose, 0)
	require.Less(t, pixelPos[0], bodyClose, "pixel must sit before the closing body tag")

	// the pixel tag runs right up to </body>
	require.True(t, strings.HasSuffix(html[:bodyClose], `style="display:none">`))
}

func TestRenderDistinctRecipientsGetDistinctURLs(t *testing.T) {
	htmlA := renderTestCampaign(t, "a@x.com")
	htmlB := renderTestCampaign(t, "b@x.com")

	pixelA := pixelRe.FindStringSubmatch(htmlA)[1]
	pixelB := pixelRe.FindStringSubmatch(htmlB)[1]
	require.NotEqual(t, pixelA, pixelB)
}

func TestRenderIncludesPromoPayload(t *testing.T) {
	html := renderTestCampaign(t, "a@x.com")
	require.Contains(t, html, "SUMMER50")
	require.Contains(t, html, "Hand-picked deals")
	require.Contains(t, html, "Up to 50% off")
}
