package usecase

import (
	"context"
	"log"

	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"
)

// mergeLines folds a change request into the previous line items. The
// AI merge is tried first; when it is unavailable or returns garbage
// the deterministic MergeLines produces the same result.
func (u *orderUsecase) mergeLines(ctx context.Context, previous []domain.Line, requested []ai.Line) []domain.Line {
	callCtx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	merged, err := u.aiService.MergeOrders(callCtx, toMergedLines(previous), requested)
	if err != nil {
		log.Printf("[OrderUsecase] AI merge unavailable, merging deterministically: %v", err)
		return MergeLines(previous, requested)
	}

	out := make([]domain.Line, 0, len(merged))
	for _, line := range merged {
		out = append(out, domain.Line{Name: line.Name, Quantity: line.Quantity})
	}
	return out
}

// MergeLines applies a change request to a previous order without AI
// involvement:
//
//   - a requested product already present updates that line's quantity
//   - a requested product not present is appended
//   - a requested quantity of 0 removes the line when present, and is
//     a no-op when absent
//   - previous lines not mentioned carry over unchanged
//
// Lines keep their previous order, appended products follow in request
// order. Repeated names within either list count once, first one wins.
func MergeLines(previous []domain.Line, requested []ai.Line) []domain.Line {
	type entry struct {
		line    domain.Line
		removed bool
	}

	entries := make([]entry, 0, len(previous)+len(requested))
	position := make(map[string]int, len(previous))

	for _, line := range previous {
		if _, ok := position[line.Name]; ok {
			continue
		}
		position[line.Name] = len(entries)
		entries = append(entries, entry{line: line})
	}

	seen := make(map[string]bool, len(requested))
	for _, req := range requested {
		if seen[req.Product] {
			continue
		}
		seen[req.Product] = true

		if i, ok := position[req.Product]; ok {
			if req.Quantity == 0 {
				entries[i].removed = true
			} else {
				entries[i].line.Quantity = req.Quantity
			}
			continue
		}
		if req.Quantity == 0 {
			continue
		}
		position[req.Product] = len(entries)
		entries = append(entries, entry{line: domain.Line{Name: req.Product, Quantity: req.Quantity}})
	}

	merged := make([]domain.Line, 0, len(entries))
	for _, e := range entries {
		if e.removed {
			continue
		}
		merged = append(merged, e.line)
	}
	return merged
}

func toMergedLines(lines []domain.Line) []ai.MergedLine {
	out := make([]ai.MergedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, ai.MergedLine{Name: line.Name, Quantity: line.Quantity})
	}
	return out
}
