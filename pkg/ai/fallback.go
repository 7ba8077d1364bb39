package ai

import (
	"context"
	"log"
	"net"
	"strings"
)

// FallbackService routes every call to a primary provider and retries
// once on a secondary when the primary is unreachable or over quota.
type FallbackService struct {
	primary   Service
	secondary Service
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(primary, secondary Service) *FallbackService {
	return &FallbackService{primary: primary, secondary: secondary}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}
	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// shouldFallBack decides whether the secondary provider is worth trying.
// Parse failures are not retried on another model; only availability
// problems are.
func shouldFallBack(err error) bool {
	return isConnectionError(err) || isQuotaError(err)
}

func (f *FallbackService) Classify(ctx context.Context, body string) (Category, error) {
	category, err := f.primary.Classify(ctx, body)
	if err != nil && shouldFallBack(err) && f.secondary != nil {
		log.Printf("[AI] Primary classifier unavailable: %v, falling back", err)
		return f.secondary.Classify(ctx, body)
	}
	return category, err
}

func (f *FallbackService) ExtractOrder(ctx context.Context, text string) (*ExtractedOrder, error) {
	extracted, err := f.primary.ExtractOrder(ctx, text)
	if err != nil && shouldFallBack(err) && f.secondary != nil {
		log.Printf("[AI] Primary extractor unavailable: %v, falling back", err)
		return f.secondary.ExtractOrder(ctx, text)
	}
	return extracted, err
}

func (f *FallbackService) ValidateOrder(ctx context.Context, lines []Line) (*Validation, error) {
	validation, err := f.primary.ValidateOrder(ctx, lines)
	if err != nil && shouldFallBack(err) && f.secondary != nil {
		log.Printf("[AI] Primary validator unavailable: %v, falling back", err)
		return f.secondary.ValidateOrder(ctx, lines)
	}
	return validation, err
}

func (f *FallbackService) CorrectProductNames(ctx context.Context, lines []Line, inventory []string) ([]Line, error) {
	corrected, err := f.primary.CorrectProductNames(ctx, lines, inventory)
	if err != nil && shouldFallBack(err) && f.secondary != nil {
		log.Printf("[AI] Primary corrector unavailable: %v, falling back", err)
		return f.secondary.CorrectProductNames(ctx, lines, inventory)
	}
	return corrected, err
}

func (f *FallbackService) MergeOrders(ctx context.Context, previous []MergedLine, requested []Line) ([]MergedLine, error) {
	merged, err := f.primary.MergeOrders(ctx, previous, requested)
	if err != nil && shouldFallBack(err) && f.secondary != nil {
		log.Printf("[AI] Primary merger unavailable: %v, falling back", err)
		return f.secondary.MergeOrders(ctx, previous, requested)
	}
	return merged, err
}

func (f *FallbackService) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := f.primary.Generate(ctx, prompt)
	if err != nil && shouldFallBack(err) && f.secondary != nil {
		log.Printf("[AI] Primary generator unavailable: %v, falling back", err)
		return f.secondary.Generate(ctx, prompt)
	}
	return reply, err
}
