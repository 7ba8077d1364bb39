package ai

import "context"

// Category is the closed set of email types the classifier may return.
type Category string

const (
	CategoryOrderConfirmation Category = "Order confirmation"
	CategoryOrderChange       Category = "Change to order"
	CategoryComplaint         Category = "Complaint"
	CategoryOther             Category = "Other"
)

// Line is an extracted (product, quantity) pair, pre-correction.
type Line struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CustomerDetails is the inline profile scraped from an email.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ExtractedOrder is the raw output of the extraction call.
type ExtractedOrder struct {
	Customer *CustomerDetails `json:"customer,omitempty"`
	Orders   []Line           `json:"orders"`
}

// Validation is the outcome of the structural soundness check.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// MergedLine is one line of a merged order, keyed by canonical name.
type MergedLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Service is the interface for the order-intelligence provider.
// Implement this interface to add new AI providers (Gemini, Ollama, etc.)
type Service interface {
	// Classify maps an email body to one of the closed categories.
	// An error means the upstream classifier is unavailable; callers
	// must not guess a category in that case.
	Classify(ctx context.Context, body string) (Category, error)

	// ExtractOrder converts free text into structured order details.
	ExtractOrder(ctx context.Context, text string) (*ExtractedOrder, error)

	// ValidateOrder checks each line for a product name and quantity.
	ValidateOrder(ctx context.Context, lines []Line) (*Validation, error)

	// CorrectProductNames renames each line to its closest inventory
	// match, one corrected name per input line, same order.
	CorrectProductNames(ctx context.Context, lines []Line, inventory []string) ([]Line, error)

	// MergeOrders merges a change request into a previous order's lines.
	MergeOrders(ctx context.Context, previous []MergedLine, requested []Line) ([]MergedLine, error)

	// Generate answers a freeform prompt (chatbot, pricing reports).
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
