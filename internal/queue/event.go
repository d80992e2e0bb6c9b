// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// SubmissionAcceptedEvent is published after a pass submission is
// committed (both on create and on patch).  It carries enough detail
// for downstream consumers — moderation tooling, notifications,
// analytics — without querying the primary database.
type SubmissionAcceptedEvent struct {
	PerevalID   int64   `json:"pereval_id"`
	Action      string  `json:"action"` // "created" or "updated"
	Title       string  `json:"title"`
	BeautyTitle string  `json:"beauty_title"`
	UserEmail   string  `json:"user_email"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Height      int     `json:"height"`
	Images      int     `json:"images"`
	SubmittedAt string  `json:"submitted_at"`
}
