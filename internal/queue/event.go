// Package queue defines message payloads exchanged over the message broker.
package queue

// ReportEmailEvent is published when a report job has an email ready to
// send. It carries the complete message, attachment included, so the
// consumer can deliver it without querying the primary database.
type ReportEmailEvent struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentName string `json:"attachment_name,omitempty"`
	Attachment     []byte `json:"attachment,omitempty"` // base64 over the wire
	QueuedAt       string `json:"queued_at"`
}
