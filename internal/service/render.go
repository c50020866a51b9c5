// internal/service/render.go
package service

import (
    "bytes"
    _ "embed"
    "fmt"
    "html/template"
    "net/url"
    "strconv"
    "strings"

    "github.com/brightcart/mailblast-backend/internal/model"
)

//go:embed templates/campaign.html
var campaignTemplateHTML string

// Renderer produces the per-recipient HTML body. Every rendered email
// carries tracking URLs that identify the exact (campaign, recipient)
// pair so opens and clicks can be attributed later.
type Renderer struct {
    BaseURL string
    tmpl    *template.Template
}

func NewRenderer(baseURL string) (*Renderer, error) {
    tmpl, err := template.New("campaign").Parse(campaignTemplateHTML)
    if err != nil {
        return nil, fmt.Errorf("parse campaign template: %w", err)
    }
    return &Renderer{
        BaseURL: strings.TrimRight(baseURL, "/"),
        tmpl:    tmpl,
    }, nil
}

type renderData struct {
    Subject      string
    Body         template.HTML
    ImageURL     string
    ActionURL    string
    PromoText    string
    DiscountCode string
}

// Render builds the full HTML body for one recipient: the CTA link is
// rewritten through the click-tracking redirect, and a 1x1 open-tracking
// pixel is inserted immediately before the closing body tag.
func (r *Renderer) Render(c *model.Campaign, recipient string) (string, error) {
    data := renderData{
        Subject:  c.Subject,
        Body:     template.HTML(c.Body),
        ImageURL: c.ImageURL,
    }
    if c.ActionURL != "" {
        data.ActionURL = r.ClickURL(c.ID, recipient, c.ActionURL)
    }
    if c.Data != nil {
        data.PromoText = c.Data.PromoText
        data.DiscountCode = c.Data.DiscountCode
    }

    var buf bytes.Buffer
    if err := r.tmpl.Execute(&buf, data); err != nil {
        return "", fmt.Errorf("render campaign %d for %s: %w", c.ID, recipient, err)
    }

    html := buf.String()
    pixel := fmt.Sprintf(`<img src="%s" width="1" height="1" alt="" style="display:none">`, r.OpenURL(c.ID, recipient))
    if strings.Contains(html, "</body>") {
        html = strings.Replace(html, "</body>", pixel+"</body>", 1)
    } else {
        html += pixel
    }
    return html, nil
}

// OpenURL is the open-tracking pixel endpoint for one recipient.
func (r *Renderer) OpenURL(campaignID int, recipient string) string {
    v := url.Values{}
    v.Set("campaign_id", strconv.Itoa(campaignID))
    v.Set("email", recipient)
    return r.BaseURL + "/track/open?" + v.Encode()
}

// ClickURL routes the original destination through the click-tracking
// redirect. The target URL is preserved as a query parameter so the
// redirect handler can forward the user after recording the click.
func (r *Renderer) ClickURL(campaignID int, recipient, target string) string {
    v := url.Values{}
    v.Set("campaign_id", strconv.Itoa(campaignID))
    v.Set("email", recipient)
    v.Set("url", target)
    return r.BaseURL + "/track/click?" + v.Encode()
}
