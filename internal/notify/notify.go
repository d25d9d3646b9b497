// Package notify delivers composed messages through the WhatsApp HTTP
// gateway. The gateway contract: 200/201 means the message was accepted,
// 400/403 is a permanent rejection, anything else (unexpected statuses,
// transport errors, timeouts) is a transient failure retried with backoff
// up to the configured attempt count. One circuit breaker spans every send
// in a run, so a dead gateway fails fast instead of walking the full retry
// schedule for each remaining message.
package notify

import "net/http"

// DeliveryStatus classifies the outcome of one recipient delivery.
type DeliveryStatus string

const (
	// StatusDelivered means the gateway accepted the message.
	StatusDelivered DeliveryStatus = "delivered"
	// StatusTransient means the attempt failed in a way a later run may
	// succeed at (5xx, network error, timeout, unexpected status).
	StatusTransient DeliveryStatus = "transient_failure"
	// StatusPermanent means the gateway rejected the message outright;
	// retrying the same payload cannot succeed.
	StatusPermanent DeliveryStatus = "permanent_failure"
)

// DeliveryResult is the per-recipient outcome of a send.
type DeliveryResult struct {
	Recipient  string
	Status     DeliveryStatus
	HTTPStatus int // zero when no response was received
	Detail     string
}

// Delivered reports whether the gateway accepted the message.
func (r DeliveryResult) Delivered() bool {
	return r.Status == StatusDelivered
}

// ClassifyStatus maps a gateway HTTP status to a delivery status.
func ClassifyStatus(status int) DeliveryStatus {
	switch status {
	case http.StatusOK, http.StatusCreated:
		return StatusDelivered
	case http.StatusBadRequest, http.StatusForbidden:
		return StatusPermanent
	default:
		return StatusTransient
	}
}
