package notification

import (
	"fmt"
	"strings"

	orderdomain "github.com/KumarShresth7/EmailAutomation/internal/order/domain"
)

// compose renders the subject and plain-text body for an outcome.
func compose(outcome Outcome) (subject, body string) {
	switch outcome.Kind {
	case KindAcknowledgment:
		return "Your order has been received", fmt.Sprintf(
			"Hello %s,\n\nThank you for your order. We have recorded the following items:\n\n%s\nStatus: %s\n\nWe will let you know as soon as your order ships.",
			displayName(outcome), formatLines(outcome.Order), outcome.Order.Status)

	case KindIssue:
		var reasons strings.Builder
		for _, reason := range outcome.Reasons {
			reasons.WriteString("- " + reason + "\n")
		}
		return "There was a problem with your order", fmt.Sprintf(
			"Hello,\n\nWe could not process your recent email:\n\n%s\nPlease reply with the corrected details and we will take care of it right away.",
			reasons.String())

	case KindUpdateConfirmation:
		return "Your order has been updated", fmt.Sprintf(
			"Hello %s,\n\nYour order now contains:\n\n%s\nStatus: %s",
			displayName(outcome), formatLines(outcome.Order), outcome.Order.Status)

	case KindInvoice:
		return "Your order is fulfilled", fmt.Sprintf(
			"Hello %s,\n\nYour order has been fulfilled:\n\n%s\nThank you for shopping with us.",
			displayName(outcome), formatLines(outcome.Order))
	}
	return "", ""
}

func displayName(outcome Outcome) string {
	if outcome.Order != nil && outcome.Order.Name != "" {
		return outcome.Order.Name
	}
	return "customer"
}

func formatLines(order *orderdomain.Order) string {
	if order == nil {
		return ""
	}
	var b strings.Builder
	for _, line := range order.Products {
		b.WriteString(fmt.Sprintf("- %s x %d\n", line.Name, line.Quantity))
	}
	return b.String()
}
