package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	inventoryrepo "github.com/KumarShresth7/EmailAutomation/internal/inventory/repository"
	orderdomain "github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	orderrepo "github.com/KumarShresth7/EmailAutomation/internal/order/repository"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"
)

// deadstockWindow is how far back an item must have gone unsold to
// count as deadstock.
const deadstockWindow = 30 * 24 * time.Hour

// Deadstock is a catalog item with no sales inside the window.
type Deadstock struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// RestockAlert is an item at or below its stock alert level.
type RestockAlert struct {
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	StockAlertLevel   int    `json:"stockAlertLevel"`
	WarehouseLocation string `json:"warehouseLocation"`
}

// AnalyticsUsecase defines the interface for dashboard analytics
type AnalyticsUsecase interface {
	// GetDeadstocks returns items unsold over the deadstock window
	GetDeadstocks() ([]Deadstock, error)

	// GetUrgentRestocking returns items at or below their alert level
	GetUrgentRestocking() ([]RestockAlert, error)

	// GetPricingSuggestions asks the AI for price adjustments based on
	// current stock and recent sales
	GetPricingSuggestions(ctx context.Context) (string, error)
}

type analyticsUsecase struct {
	orders    orderrepo.OrderRepository
	inventory inventoryrepo.InventoryRepository
	aiService ai.Service
	now       func() time.Time
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	orders orderrepo.OrderRepository,
	inventory inventoryrepo.InventoryRepository,
	aiService ai.Service,
) AnalyticsUsecase {
	return &analyticsUsecase{
		orders:    orders,
		inventory: inventory,
		aiService: aiService,
		now:       time.Now,
	}
}

func (u *analyticsUsecase) GetDeadstocks() ([]Deadstock, error) {
	items, err := u.inventory.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	sold, err := u.recentSales()
	if err != nil {
		return nil, err
	}

	deadstocks := []Deadstock{}
	for _, item := range items {
		if _, ok := sold[item.Name]; ok {
			continue
		}
		deadstocks = append(deadstocks, Deadstock{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return deadstocks, nil
}

func (u *analyticsUsecase) GetUrgentRestocking() ([]RestockAlert, error) {
	items, err := u.inventory.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	alerts := []RestockAlert{}
	for _, item := range items {
		if item.Quantity <= item.StockAlertLevel {
			alerts = append(alerts, RestockAlert{
				Name:              item.Name,
				Quantity:          item.Quantity,
				StockAlertLevel:   item.StockAlertLevel,
				WarehouseLocation: item.WarehouseLocation,
			})
		}
	}
	return alerts, nil
}

func (u *analyticsUsecase) GetPricingSuggestions(ctx context.Context) (string, error) {
	items, err := u.inventory.FindAll()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}
	sold, err := u.recentSales()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s: price %.2f, stock %d, sold last 30 days %d\n",
			item.Name, item.Price, item.Quantity, sold[item.Name])
	}

	prompt := fmt.Sprintf(`You are a pricing analyst for a wholesale store.
Given current stock levels and units sold over the last 30 days, suggest
price adjustments. Recommend discounts for overstocked slow movers and
increases for fast movers with low stock. Keep each suggestion to one
line with a short justification.

Inventory:
%s`, sb.String())

	summary, err := u.aiService.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate pricing suggestions: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// recentSales sums quantities sold per product over the window,
// excluding cancelled orders.
func (u *analyticsUsecase) recentSales() (map[string]int, error) {
	since := u.now().Add(-deadstockWindow).Format(orderdomain.DateLayout)
	orders, err := u.orders.FindSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	sold := make(map[string]int)
	for _, order := range orders {
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		for _, line := range order.Products {
			sold[line.Name] += line.Quantity
		}
	}
	return sold, nil
}
