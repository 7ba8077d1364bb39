package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	customerdomain "github.com/KumarShresth7/EmailAutomation/internal/customer/domain"
	"github.com/KumarShresth7/EmailAutomation/internal/errorlog"
	inventorydomain "github.com/KumarShresth7/EmailAutomation/internal/inventory/domain"
	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stores mirroring the repository contracts, including the
// independent date and time comparison of the duplicate lookup.

type memOrderRepo struct {
	orders []*domain.Order
	nextID int
}

func (r *memOrderRepo) Create(order *domain.Order) error {
	r.nextID++
	order.ID = fmt.Sprintf("order-%d", r.nextID)
	copied := *order
	r.orders = append(r.orders, &copied)
	return nil
}

func (r *memOrderRepo) FindByID(id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindAll() ([]*domain.Order, error) {
	return r.orders, nil
}

func (r *memOrderRepo) FindLatestByEmail(email string) (*domain.Order, error) {
	var matches []*domain.Order
	for _, o := range r.orders {
		if o.Email == email {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Date != matches[j].Date {
			return matches[i].Date > matches[j].Date
		}
		return matches[i].Time > matches[j].Time
	})
	copied := *matches[0]
	return &copied, nil
}

func (r *memOrderRepo) FindDuplicate(email string, lines []domain.Line, sinceDate, sinceTime string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.Email == email && o.Date >= sinceDate && o.Time >= sinceTime && domain.SameLines(o.Products, lines) {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindSince(date string) ([]*domain.Order, error) {
	var matches []*domain.Order
	for _, o := range r.orders {
		if o.Date >= date {
			matches = append(matches, o)
		}
	}
	return matches, nil
}

func (r *memOrderRepo) ReplaceProducts(id string, lines []domain.Line) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.Products = lines
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.New("order not found")
}

func (r *memOrderRepo) UpdateStatusByLink(orderLink string, status domain.Status) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderLink == orderLink {
			o.Status = status
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

type memCustomerRepo struct {
	customers map[string]*customerdomain.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: map[string]*customerdomain.Customer{}}
}

func (r *memCustomerRepo) FindByEmail(email string) (*customerdomain.Customer, error) {
	c, ok := r.customers[email]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *memCustomerRepo) FindAll() ([]*customerdomain.Customer, error) {
	var all []*customerdomain.Customer
	for _, c := range r.customers {
		all = append(all, c)
	}
	return all, nil
}

func (r *memCustomerRepo) Create(customer *customerdomain.Customer) error {
	customer.ID = "customer-" + customer.Email
	r.customers[customer.Email] = customer
	return nil
}

func (r *memCustomerRepo) AppendOrder(email, orderID string) error {
	c, ok := r.customers[email]
	if !ok {
		return errors.New("customer not found")
	}
	c.PastOrders = append(c.PastOrders, orderID)
	return nil
}

type memInventoryRepo struct {
	items []*inventorydomain.Item
}

func (r *memInventoryRepo) FindAll() ([]*inventorydomain.Item, error) { return r.items, nil }

func (r *memInventoryRepo) FindByID(id string) (*inventorydomain.Item, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) FindByName(name string) (*inventorydomain.Item, error) {
	for _, item := range r.items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) Names() ([]string, error) {
	names := make([]string, 0, len(r.items))
	for _, item := range r.items {
		names = append(names, item.Name)
	}
	return names, nil
}

func (r *memInventoryRepo) Create(item *inventorydomain.Item) error {
	r.items = append(r.items, item)
	return nil
}

func (r *memInventoryRepo) Update(*inventorydomain.Item) error { return nil }
func (r *memInventoryRepo) Delete(string) error                { return nil }

// scriptedAI returns canned replies per call. Unset replies fail, which
// exercises the degraded paths.
type scriptedAI struct {
	extracted  *ai.ExtractedOrder
	extractErr error
	validation *ai.Validation
	corrected  []ai.Line
	correctErr error
	merged     []ai.MergedLine
	mergeErr   error
}

func (s *scriptedAI) Classify(context.Context, string) (ai.Category, error) {
	return ai.CategoryOther, nil
}

func (s *scriptedAI) ExtractOrder(context.Context, string) (*ai.ExtractedOrder, error) {
	return s.extracted, s.extractErr
}

func (s *scriptedAI) ValidateOrder(context.Context, []ai.Line) (*ai.Validation, error) {
	if s.validation == nil {
		return &ai.Validation{Valid: true}, nil
	}
	return s.validation, nil
}

func (s *scriptedAI) CorrectProductNames(_ context.Context, lines []ai.Line, _ []string) ([]ai.Line, error) {
	if s.correctErr != nil {
		return nil, s.correctErr
	}
	if s.corrected == nil {
		return lines, nil
	}
	return s.corrected, nil
}

func (s *scriptedAI) MergeOrders(context.Context, []ai.MergedLine, []ai.Line) ([]ai.MergedLine, error) {
	return s.merged, s.mergeErr
}

func (s *scriptedAI) Generate(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

type sentIssue struct {
	email   string
	reasons []string
}

type recordingDispatcher struct {
	acks     []*domain.Order
	issues   []sentIssue
	updates  []*domain.Order
	invoices []*domain.Order
}

func (d *recordingDispatcher) SendAcknowledgment(_ context.Context, order *domain.Order) {
	d.acks = append(d.acks, order)
}

func (d *recordingDispatcher) SendOrderIssue(_ context.Context, email string, reasons []string) {
	d.issues = append(d.issues, sentIssue{email: email, reasons: reasons})
}

func (d *recordingDispatcher) SendUpdateConfirmation(_ context.Context, _ string, order *domain.Order) {
	d.updates = append(d.updates, order)
}

func (d *recordingDispatcher) SendInvoice(_ context.Context, order *domain.Order) {
	d.invoices = append(d.invoices, order)
}

type fixture struct {
	usecase    OrderUsecase
	orders     *memOrderRepo
	customers  *memCustomerRepo
	inventory  *memInventoryRepo
	dispatcher *recordingDispatcher
}

func newFixture(aiService ai.Service) *fixture {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	inventory := &memInventoryRepo{items: []*inventorydomain.Item{
		{ID: "1", Name: "Widget A", Quantity: 100},
		{ID: "2", Name: "Widget B", Quantity: 50},
		{ID: "3", Name: "Widget C", Quantity: 10},
	}}
	dispatcher := &recordingDispatcher{}
	uc := NewOrderUsecase(orders, customers, inventory, aiService, dispatcher, errorlog.Nop{}, time.Second)
	return &fixture{
		usecase:    uc,
		orders:     orders,
		customers:  customers,
		inventory:  inventory,
		dispatcher: dispatcher,
	}
}

func knownCustomer() *customerdomain.Customer {
	return &customerdomain.Customer{
		Name:    "Alice",
		Email:   "alice@example.com",
		Phone:   "555-0100",
		Address: "1 Main St",
	}
}

func TestProcessNewOrderStoresAndAcknowledges(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 5}}},
	})
	require.NoError(t, f.customers.Create(knownCustomer()))

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "I want 5 Widget A")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	require.Len(t, f.orders.orders, 1)

	stored := f.orders.orders[0]
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, []domain.Line{{Name: "Widget A", Quantity: 5}}, stored.Products)

	require.Len(t, f.dispatcher.acks, 1)
	assert.Empty(t, f.dispatcher.issues)
	assert.Equal(t, []string{stored.ID}, f.customers.customers["alice@example.com"].PastOrders)
}

func TestProcessNewOrderCreatesNewCustomer(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{
			Customer: &ai.CustomerDetails{Name: "Bob", Email: "bob@example.com", Phone: "555-0101", Address: "2 Oak Ave"},
			Orders:   []ai.Line{{Product: "Widget B", Quantity: 2}},
		},
	})

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "bob@example.com", "2025-03-14", "09:30:00", "2 Widget B please")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	created := f.customers.customers["bob@example.com"]
	require.NotNil(t, created)
	assert.Equal(t, "Bob", created.Name)
	assert.Len(t, created.PastOrders, 1)
}

func TestProcessNewOrderBackfillsKnownSender(t *testing.T) {
	// Inline details missing the phone: the stored profile replaces
	// them wholesale
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{
			Customer: &ai.CustomerDetails{Name: "A. Liddell", Email: "alice@example.com"},
			Orders:   []ai.Line{{Product: "Widget A", Quantity: 1}},
		},
	})
	require.NoError(t, f.customers.Create(knownCustomer()))

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "one more widget")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, "Alice", f.orders.orders[0].Name)
}

func TestProcessNewOrderRejectsUnknownSenderWithPartialDetails(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{
			Customer: &ai.CustomerDetails{Name: "Carol", Email: "carol@example.com"},
			Orders:   []ai.Line{{Product: "Widget A", Quantity: 1}},
		},
	})

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "carol@example.com", "2025-03-14", "09:30:00", "a widget")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, outcome)
	assert.Empty(t, f.orders.orders)
	assert.Nil(t, f.customers.customers["carol@example.com"])
	require.Len(t, f.dispatcher.issues, 1)
}

func TestProcessNewOrderRejectsEmptyExtraction(t *testing.T) {
	f := newFixture(&scriptedAI{extractErr: errors.New("model unavailable")})

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "gibberish")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, outcome)
	require.Len(t, f.dispatcher.issues, 1)
	assert.Contains(t, f.dispatcher.issues[0].reasons[0], "No order details")
}

func TestProcessNewOrderRejectsInvalidDetails(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted:  &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A"}}},
		validation: &ai.Validation{Valid: false, Errors: []string{"Missing quantity for product Widget A"}},
	})
	require.NoError(t, f.customers.Create(knownCustomer()))

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "some widgets")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, outcome)
	assert.Empty(t, f.orders.orders)
	require.Len(t, f.dispatcher.issues, 1)
	assert.Equal(t, []string{"Missing quantity for product Widget A"}, f.dispatcher.issues[0].reasons)
}

func TestProcessNewOrderRejectsWholeOrderOnUnknownProduct(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{
			{Product: "Widget A", Quantity: 5},
			{Product: "Widgett X", Quantity: 1},
		}},
	})
	require.NoError(t, f.customers.Create(knownCustomer()))

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "widgets")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, outcome)
	// All or nothing: the known line is not inserted either
	assert.Empty(t, f.orders.orders)
	require.Len(t, f.dispatcher.issues, 1)
	assert.Contains(t, f.dispatcher.issues[0].reasons[0], "not in our inventory")
	assert.Contains(t, f.dispatcher.issues[0].reasons[0], "Widgett X")
}

func TestProcessNewOrderSuppressesDuplicateInsideWindow(t *testing.T) {
	script := &scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 5}}},
	}
	f := newFixture(script)
	require.NoError(t, f.customers.Create(knownCustomer()))

	_, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "5 Widget A")
	require.NoError(t, err)

	// Identical order four minutes later
	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:34:00", "5 Widget A")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDuplicate, outcome)
	assert.Len(t, f.orders.orders, 1)
	assert.Len(t, f.dispatcher.acks, 1)
	assert.Empty(t, f.dispatcher.issues)
}

func TestProcessNewOrderAcceptsIdenticalOrderPastWindow(t *testing.T) {
	script := &scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 5}}},
	}
	f := newFixture(script)
	require.NoError(t, f.customers.Create(knownCustomer()))

	_, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "5 Widget A")
	require.NoError(t, err)

	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:36:00", "5 Widget A")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	assert.Len(t, f.orders.orders, 2)
}

func TestProcessNewOrderDifferentLinesAreNotDuplicates(t *testing.T) {
	script := &scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 5}}},
	}
	f := newFixture(script)
	require.NoError(t, f.customers.Create(knownCustomer()))

	_, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "5 Widget A")
	require.NoError(t, err)

	script.extracted = &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 6}}}
	outcome, err := f.usecase.ProcessNewOrder(context.Background(), "alice@example.com", "2025-03-14", "09:31:00", "make it 6")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	assert.Len(t, f.orders.orders, 2)
}

func TestProcessOrderChangeMergesModifiableOrder(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{
			{Product: "Widget A", Quantity: 3},
			{Product: "Widget C", Quantity: 1},
			{Product: "Widget B", Quantity: 0},
		}},
		mergeErr: errors.New("model unavailable"),
	})
	require.NoError(t, f.orders.Create(&domain.Order{
		Name:  "Alice",
		Email: "alice@example.com",
		Date:  "2025-03-14",
		Time:  "09:00:00",
		Products: []domain.Line{
			{Name: "Widget A", Quantity: 5},
			{Name: "Widget B", Quantity: 2},
		},
		Status: domain.StatusPending,
	}))

	outcome, err := f.usecase.ProcessOrderChange(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "change my order")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeModified, outcome)
	assert.Equal(t, []domain.Line{
		{Name: "Widget A", Quantity: 3},
		{Name: "Widget C", Quantity: 1},
	}, f.orders.orders[0].Products)
	require.Len(t, f.dispatcher.updates, 1)
	assert.Empty(t, f.dispatcher.acks)
}

func TestProcessOrderChangePrefersAIMerge(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 7}}},
		merged:    []ai.MergedLine{{Name: "Widget A", Quantity: 7}},
	})
	require.NoError(t, f.orders.Create(&domain.Order{
		Email:    "alice@example.com",
		Date:     "2025-03-14",
		Time:     "09:00:00",
		Products: []domain.Line{{Name: "Widget A", Quantity: 5}},
		Status:   domain.StatusPending,
	}))

	outcome, err := f.usecase.ProcessOrderChange(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "7 instead")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeModified, outcome)
	assert.Equal(t, []domain.Line{{Name: "Widget A", Quantity: 7}}, f.orders.orders[0].Products)
}

func TestProcessOrderChangeFallsThroughWhenNotModifiable(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget C", Quantity: 2}}},
	})
	require.NoError(t, f.customers.Create(knownCustomer()))
	require.NoError(t, f.orders.Create(&domain.Order{
		Email:    "alice@example.com",
		Date:     "2025-03-13",
		Time:     "12:00:00",
		Products: []domain.Line{{Name: "Widget A", Quantity: 5}},
		Status:   domain.StatusFulfilled,
	}))

	outcome, err := f.usecase.ProcessOrderChange(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "2 Widget C")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	require.Len(t, f.orders.orders, 2)
	assert.Equal(t, []domain.Line{{Name: "Widget C", Quantity: 2}}, f.orders.orders[1].Products)
	// The fulfilled order is untouched
	assert.Equal(t, []domain.Line{{Name: "Widget A", Quantity: 5}}, f.orders.orders[0].Products)
	assert.Len(t, f.dispatcher.acks, 1)
}

func TestProcessOrderChangeFallsThroughWhenNoOrderExists(t *testing.T) {
	f := newFixture(&scriptedAI{
		extracted: &ai.ExtractedOrder{Orders: []ai.Line{{Product: "Widget A", Quantity: 1}}},
	})
	require.NoError(t, f.customers.Create(knownCustomer()))

	outcome, err := f.usecase.ProcessOrderChange(context.Background(), "alice@example.com", "2025-03-14", "09:30:00", "1 Widget A")

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNewOrder, outcome)
	assert.Len(t, f.orders.orders, 1)
}

func TestUpdateStatusToFulfilledSendsInvoice(t *testing.T) {
	f := newFixture(&scriptedAI{})
	require.NoError(t, f.orders.Create(&domain.Order{
		Email:     "alice@example.com",
		OrderLink: "link-1",
		Status:    domain.StatusPending,
	}))

	order, err := f.usecase.UpdateStatus(context.Background(), "link-1", domain.StatusFulfilled)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.StatusFulfilled, order.Status)
	require.Len(t, f.dispatcher.invoices, 1)
}

func TestUpdateStatusUnknownLink(t *testing.T) {
	f := newFixture(&scriptedAI{})

	order, err := f.usecase.UpdateStatus(context.Background(), "missing", domain.StatusCancelled)

	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Empty(t, f.dispatcher.invoices)
}
