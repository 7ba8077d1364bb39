package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// generator is a minimal text-in text-out model client. Gemini and
// Ollama both satisfy it.
type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// modelService implements Service on top of any generator by owning the
// prompts and the reply parsing.
type modelService struct {
	name string
	gen  generator
}

func newModelService(name string, gen generator) *modelService {
	return &modelService{name: name, gen: gen}
}

func (m *modelService) Classify(ctx context.Context, body string) (Category, error) {
	prompt := fmt.Sprintf(`You are an AI assistant sorting inbound emails for a shop.
Classify the following email into exactly one of these categories:
- Order confirmation
- Change to order
- Complaint
- Other

**Email:**
"%s"

Reply with the category name only, no explanation.`, body)

	reply, err := m.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s classification failed: %w", m.name, err)
	}
	return ParseCategory(reply), nil
}

func (m *modelService) ExtractOrder(ctx context.Context, text string) (*ExtractedOrder, error) {
	prompt := fmt.Sprintf(`You are an AI assistant extracting order details from an email.
Extract and return only in JSON format:

**Email:**
"%s"

**Expected JSON Output:**
{
    "customer": {"name": "", "email": "", "phone": "", "address": ""},
    "orders": [
        {"product": "Product Name", "quantity": Number}
    ]
}

Omit the "customer" key if the email contains no customer details.`, text)

	reply, err := m.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s extraction failed: %w", m.name, err)
	}
	return ParseExtractionReply(reply)
}

func (m *modelService) ValidateOrder(ctx context.Context, lines []Line) (*Validation, error) {
	encoded, _ := json.MarshalIndent(lines, "", "  ")
	prompt := fmt.Sprintf(`You are an AI assistant validating order details.
Your task is to check if the order contains incomplete, incorrect, or unclear details.

**Validation Criteria:**
- Ensure that each item has a product name and quantity.
- The price is not required.
- If any required detail is missing or unclear, list it as an error.

**Order Details:**
%s

**Expected JSON Output (Strict Format, No Explanation):**
{
    "valid": true/false,
    "errors": ["Missing quantity for product X"]
}`, string(encoded))

	reply, err := m.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s validation failed: %w", m.name, err)
	}
	return ParseValidationReply(reply)
}

func (m *modelService) CorrectProductNames(ctx context.Context, lines []Line, inventory []string) ([]Line, error) {
	var ordered []string
	for _, line := range lines {
		ordered = append(ordered, "- "+line.Product)
	}
	prompt := fmt.Sprintf(`Here is our inventory list:
%s

And here are the ordered products:
%s

For each ordered product, find the closest matching product from our inventory.
Return only the corrected product names, one per line, in the same order.`,
		strings.Join(inventory, "\n"), strings.Join(ordered, "\n"))

	reply, err := m.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s correction failed: %w", m.name, err)
	}

	names := ParseNameList(reply)
	corrected := make([]Line, len(lines))
	for i, line := range lines {
		if i < len(names) {
			corrected[i] = Line{Product: names[i], Quantity: line.Quantity}
		} else {
			// Shortfall passes through uncorrected
			corrected[i] = line
		}
	}
	return corrected, nil
}

func (m *modelService) MergeOrders(ctx context.Context, previous []MergedLine, requested []Line) ([]MergedLine, error) {
	previousJSON, _ := json.MarshalIndent(previous, "", "  ")
	requestedJSON, _ := json.MarshalIndent(requested, "", "  ")
	prompt := fmt.Sprintf(`You are an AI assistant helping with order updates.

PREVIOUS ORDER:
%s

REQUESTED CHANGES:
%s

Analyze these changes and determine the appropriate action for each item:
1. If an item in the requested changes already exists in the previous order, update its quantity accordingly.
2. If an item in the requested changes doesn't exist in the previous order, add it as a new item.
3. If the requested changes specify a quantity of 0 for an existing item, remove it from the order.
4. If an item in the previous order isn't mentioned in the requested changes, keep it unchanged.

Return ONLY a valid JSON array of the updated products in this exact format:
[
    {"name": "Product Name", "quantity": Number}
]`, string(previousJSON), string(requestedJSON))

	reply, err := m.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s merge failed: %w", m.name, err)
	}
	return ParseMergeReply(reply)
}

func (m *modelService) Generate(ctx context.Context, prompt string) (string, error) {
	return m.gen.GenerateContent(ctx, prompt)
}
