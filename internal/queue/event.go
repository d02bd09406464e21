// Package queue defines message payloads exchanged over the message broker.
package queue

// QueueName is the durable queue carrying loyalty and register activity.
const QueueName = "loyalty.activity"

// Activity kinds carried on the queue.
const (
	KindEarn          = "points.earned"
	KindSpend         = "points.spent"
	KindRegisterClose = "register.closed"
)

// ActivityEvent is published whenever loyalty points move or a register
// session closes.  It carries enough information for downstream consumers
// to log, notify, or feed analytics without querying the primary database.
type ActivityEvent struct {
	EventID      string `json:"event_id"`
	Kind         string `json:"kind"`
	SellerID     uint64 `json:"seller_id"`
	ProgramID    uint64 `json:"program_id,omitempty"`
	RegisterID   uint64 `json:"register_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Points       int64  `json:"points,omitempty"`
	Balance      int64  `json:"balance,omitempty"`
	Tier         string `json:"tier,omitempty"`
	AmountCents  int64  `json:"amount_cents,omitempty"`
	Description  string `json:"description,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}
