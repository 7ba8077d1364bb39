package notification

import (
	"context"

	orderdomain "github.com/KumarShresth7/EmailAutomation/internal/order/domain"
)

// Kind identifies the outbound message type.
type Kind string

const (
	KindAcknowledgment     Kind = "acknowledgment"
	KindIssue              Kind = "issue"
	KindUpdateConfirmation Kind = "update_confirmation"
	KindInvoice            Kind = "invoice"
)

// Outcome is one fully-formed notification decided by the pipeline.
// The pipeline decides what and whether to send; delivery is this
// package's problem.
type Outcome struct {
	Kind    Kind               `json:"kind"`
	Email   string             `json:"email"`
	Reasons []string           `json:"reasons,omitempty"`
	Order   *orderdomain.Order `json:"order,omitempty"`
}

// Dispatcher accepts outcomes fire-and-forget. Implementations log
// delivery failures instead of surfacing them to the pipeline.
type Dispatcher interface {
	SendAcknowledgment(ctx context.Context, order *orderdomain.Order)
	SendOrderIssue(ctx context.Context, email string, reasons []string)
	SendUpdateConfirmation(ctx context.Context, email string, order *orderdomain.Order)
	SendInvoice(ctx context.Context, order *orderdomain.Order)
}

// NopDispatcher discards outcomes. Used in tests.
type NopDispatcher struct{}

func (NopDispatcher) SendAcknowledgment(context.Context, *orderdomain.Order) {}
func (NopDispatcher) SendOrderIssue(context.Context, string, []string)      {}
func (NopDispatcher) SendUpdateConfirmation(context.Context, string, *orderdomain.Order) {
}
func (NopDispatcher) SendInvoice(context.Context, *orderdomain.Order) {}
