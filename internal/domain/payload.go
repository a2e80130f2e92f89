package domain

import "strings"

// NotificationPayload is the pre-delivery form of an alert: one per cycle,
// built only when at least one host stayed down after retries.
type NotificationPayload struct {
	Subject    string   `json:"subject"`
	BodyLines  []string `json:"body_lines"`
	Recipients []string `json:"recipients"`
	Timestamp  string   `json:"timestamp"`
}

// Body joins the body lines for transports that want a single text block.
func (p NotificationPayload) Body() string {
	return strings.Join(p.BodyLines, "\n")
}
