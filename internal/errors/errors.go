// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrNoRecipients means recipient resolution produced an empty set.
// Raised before any send attempt; nothing is persisted.
type ErrNoRecipients struct {
    GroupRef string
}

func (e *ErrNoRecipients) Error() string {
    if e.GroupRef != "" {
        return fmt.Sprintf("no recipients resolved for group %q", e.GroupRef)
    }
    return "no recipients resolved"
}

func NewNoRecipients(groupRef string) error {
    return &ErrNoRecipients{GroupRef: groupRef}
}

// ErrInvalidCampaignStatus means a dispatch was attempted on a campaign
// whose status does not allow sending (e.g. already published).
type ErrInvalidCampaignStatus struct {
    CampaignID int
    Status     string
}

func (e *ErrInvalidCampaignStatus) Error() string {
    return fmt.Sprintf("campaign %d cannot be sent in status: %s", e.CampaignID, e.Status)
}

func NewInvalidCampaignStatus(id int, status string) error {
    return &ErrInvalidCampaignStatus{CampaignID: id, Status: status}
}

// ErrGroupNotFound is returned when a campaign references a group
// that does not exist.
type ErrGroupNotFound struct {
    GroupID int
}

func (e *ErrGroupNotFound) Error() string {
    return fmt.Sprintf("group with ID %d not found", e.GroupID)
}

func NewGroupNotFound(id int) error {
    return &ErrGroupNotFound{GroupID: id}
}
