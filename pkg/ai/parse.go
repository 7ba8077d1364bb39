package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Model replies arrive as free text that should contain a JSON payload,
// often wrapped in markdown fences. Every call site goes through one of
// these typed parsers and branches explicitly on the error instead of
// trusting the reply shape.

// stripFences removes markdown code fences around a reply.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// scrapeJSON extracts the first balanced payload delimited by open and
// close from the reply text.
func scrapeJSON(s string, open, close byte) (string, error) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("reply contains no %c...%c payload", open, close)
	}
	return s[start : end+1], nil
}

// ParseExtractionReply parses an extraction reply into an ExtractedOrder.
func ParseExtractionReply(reply string) (*ExtractedOrder, error) {
	payload, err := scrapeJSON(stripFences(reply), '{', '}')
	if err != nil {
		return nil, err
	}
	var extracted ExtractedOrder
	if err := json.Unmarshal([]byte(payload), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction reply: %w", err)
	}
	return &extracted, nil
}

// ParseValidationReply parses a validation reply.
func ParseValidationReply(reply string) (*Validation, error) {
	payload, err := scrapeJSON(stripFences(reply), '{', '}')
	if err != nil {
		return nil, err
	}
	var validation Validation
	if err := json.Unmarshal([]byte(payload), &validation); err != nil {
		return nil, fmt.Errorf("failed to parse validation reply: %w", err)
	}
	return &validation, nil
}

// ParseMergeReply parses a merge reply into the updated line list.
func ParseMergeReply(reply string) ([]MergedLine, error) {
	payload, err := scrapeJSON(stripFences(reply), '[', ']')
	if err != nil {
		return nil, err
	}
	var merged []MergedLine
	if err := json.Unmarshal([]byte(payload), &merged); err != nil {
		return nil, fmt.Errorf("failed to parse merge reply: %w", err)
	}
	return merged, nil
}

// ParseNameList parses a corrected-names reply: one name per line,
// optionally bulleted.
func ParseNameList(reply string) []string {
	var names []string
	for _, line := range strings.Split(stripFences(reply), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// ParseCategory maps a classifier reply onto the closed category set.
func ParseCategory(reply string) Category {
	normalized := strings.ToLower(stripFences(reply))
	switch {
	case strings.Contains(normalized, "change"):
		return CategoryOrderChange
	case strings.Contains(normalized, "order"), strings.Contains(normalized, "confirmation"):
		return CategoryOrderConfirmation
	case strings.Contains(normalized, "complaint"):
		return CategoryComplaint
	default:
		return CategoryOther
	}
}
