package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	inventoryrepo "github.com/KumarShresth7/EmailAutomation/internal/inventory/repository"
	orderrepo "github.com/KumarShresth7/EmailAutomation/internal/order/repository"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"
	"github.com/KumarShresth7/EmailAutomation/pkg/chroma"
)

// ChatbotUsecase answers staff questions about orders and inventory,
// grounded in documents indexed in the vector store.
type ChatbotUsecase interface {
	// Ask answers one freeform question
	Ask(ctx context.Context, query string) (string, error)

	// SyncKnowledge re-indexes the catalog and current orders
	SyncKnowledge(ctx context.Context) error
}

type chatbotUsecase struct {
	vectors   *chroma.ChromaClient
	aiService ai.Service
	orders    orderrepo.OrderRepository
	inventory inventoryrepo.InventoryRepository
}

// NewChatbotUsecase creates a new chatbot usecase. The vector client
// may be nil, in which case answers are generated without retrieval.
func NewChatbotUsecase(
	vectors *chroma.ChromaClient,
	aiService ai.Service,
	orders orderrepo.OrderRepository,
	inventory inventoryrepo.InventoryRepository,
) ChatbotUsecase {
	return &chatbotUsecase{
		vectors:   vectors,
		aiService: aiService,
		orders:    orders,
		inventory: inventory,
	}
}

func (u *chatbotUsecase) Ask(ctx context.Context, query string) (string, error) {
	var contextBlock string
	if u.vectors != nil {
		docs, err := u.vectors.Search(ctx, query, 5)
		if err != nil {
			log.Printf("[Chatbot] Retrieval failed, answering without context: %v", err)
		} else if len(docs) > 0 {
			contextBlock = strings.Join(docs, "\n---\n")
		}
	}

	prompt := fmt.Sprintf(`You are a support assistant for an order management system.
Answer the question using the context below. If the context does not
contain the answer, say so instead of guessing.

Context:
%s

Question: %s`, contextBlock, query)

	answer, err := u.aiService.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (u *chatbotUsecase) SyncKnowledge(ctx context.Context) error {
	if u.vectors == nil {
		return fmt.Errorf("vector store is not configured")
	}

	items, err := u.inventory.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	for _, item := range items {
		text := fmt.Sprintf("Product %s (%s): price %.2f, %d in stock at %s, restock below %d",
			item.Name, item.Category, item.Price, item.Quantity, item.WarehouseLocation, item.StockAlertLevel)
		if err := u.vectors.UpsertDocument(ctx, "item-"+item.ID, "inventory", text); err != nil {
			return err
		}
	}

	orders, err := u.orders.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	for _, order := range orders {
		var lines []string
		for _, line := range order.Products {
			lines = append(lines, fmt.Sprintf("%dx %s", line.Quantity, line.Name))
		}
		text := fmt.Sprintf("Order %s by %s <%s> on %s %s: %s (status: %s)",
			order.ID, order.Name, order.Email, order.Date, order.Time, strings.Join(lines, ", "), order.Status)
		if err := u.vectors.UpsertDocument(ctx, "order-"+order.ID, "order", text); err != nil {
			return err
		}
	}

	log.Printf("[Chatbot] Indexed %d items and %d orders", len(items), len(orders))
	return nil
}
