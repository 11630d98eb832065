// Package webhook relays rendered emails to an automation webhook that
// performs the actual mail delivery.
package webhook

import (
	"errors"
	"fmt"
)

// Payload is the JSON body posted for every email
type Payload struct {
	To        string  `json:"to"`
	From      string  `json:"from"`
	Subject   string  `json:"subject"`
	HTML      string  `json:"html"`
	Timestamp float64 `json:"timestamp"`
	Source    string  `json:"source"`
}

// Message is one email to relay
type Message struct {
	To      string
	From    string
	Subject string
	HTML    string
}

// ErrTimeout is returned when the webhook does not answer in time
var ErrTimeout = errors.New("Webhook timeout")

// StatusError is returned when the webhook answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Webhook returned %d: %s", e.StatusCode, e.Body)
}
