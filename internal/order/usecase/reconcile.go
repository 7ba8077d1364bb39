package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	customerdomain "github.com/KumarShresth7/EmailAutomation/internal/customer/domain"
	customerrepo "github.com/KumarShresth7/EmailAutomation/internal/customer/repository"
	"github.com/KumarShresth7/EmailAutomation/internal/errorlog"
	inventoryrepo "github.com/KumarShresth7/EmailAutomation/internal/inventory/repository"
	"github.com/KumarShresth7/EmailAutomation/internal/notification"
	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	"github.com/KumarShresth7/EmailAutomation/internal/order/repository"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"
	"github.com/KumarShresth7/EmailAutomation/pkg/fuzzy"
)

// duplicateWindow is how far back an identical order from the same
// sender suppresses a new insert.
const duplicateWindow = 5 * time.Minute

type orderUsecase struct {
	orders     repository.OrderRepository
	customers  customerrepo.CustomerRepository
	inventory  inventoryrepo.InventoryRepository
	aiService  ai.Service
	dispatcher notification.Dispatcher
	errors     errorlog.Recorder
	aiTimeout  time.Duration
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orders repository.OrderRepository,
	customers customerrepo.CustomerRepository,
	inventory inventoryrepo.InventoryRepository,
	aiService ai.Service,
	dispatcher notification.Dispatcher,
	errors errorlog.Recorder,
	aiTimeout time.Duration,
) OrderUsecase {
	return &orderUsecase{
		orders:     orders,
		customers:  customers,
		inventory:  inventory,
		aiService:  aiService,
		dispatcher: dispatcher,
		errors:     errors,
		aiTimeout:  aiTimeout,
	}
}

func (u *orderUsecase) ProcessNewOrder(ctx context.Context, email, date, timeOfDay, text string) (domain.Outcome, error) {
	extracted := u.extract(ctx, email, text)
	return u.processExtracted(ctx, email, date, timeOfDay, extracted)
}

// extract runs the extraction call under its own timeout. Failures are
// reported as an empty extraction, which the caller rejects with an
// issue notification.
func (u *orderUsecase) extract(ctx context.Context, email, text string) *ai.ExtractedOrder {
	callCtx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	extracted, err := u.aiService.ExtractOrder(callCtx, text)
	if err != nil {
		log.Printf("[OrderUsecase] Failed to extract order details for %s: %v", email, err)
		return nil
	}
	return extracted
}

// processExtracted is the new-order path from extraction output onward.
// The change path re-enters here when it falls through to a new order.
func (u *orderUsecase) processExtracted(ctx context.Context, email, date, timeOfDay string, extracted *ai.ExtractedOrder) (domain.Outcome, error) {
	if extracted == nil || len(extracted.Orders) == 0 {
		log.Printf("[OrderUsecase] No order details found in email from %s", email)
		u.dispatcher.SendOrderIssue(ctx, email, []string{
			"No order details were found in your email. Please send a valid order.",
		})
		return domain.OutcomeRejected, nil
	}

	if valid, errs := u.validate(ctx, extracted.Orders); !valid {
		log.Printf("[OrderUsecase] Order details from %s are invalid: %v", email, errs)
		u.dispatcher.SendOrderIssue(ctx, email, errs)
		return domain.OutcomeRejected, nil
	}

	names, err := u.inventory.Names()
	if err != nil {
		u.recordStoreFailure(email, fmt.Errorf("failed to load inventory names: %w", err))
		return "", err
	}

	corrected := u.correct(ctx, extracted.Orders, names)

	if unknown := unknownProducts(corrected, names); len(unknown) > 0 {
		log.Printf("[OrderUsecase] Unknown products from %s, order not added: %v", email, unknown)
		u.dispatcher.SendOrderIssue(ctx, email, u.unknownProductReasons(unknown, names))
		return domain.OutcomeRejected, nil
	}

	details, outcome, err := u.resolveCustomer(ctx, email, extracted.Customer)
	if details == nil {
		return outcome, err
	}

	return u.insertOrder(ctx, email, date, timeOfDay, details, corrected)
}

// validate runs the structural soundness check. An AI failure counts as
// invalid, never as a pass.
func (u *orderUsecase) validate(ctx context.Context, lines []ai.Line) (bool, []string) {
	callCtx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	validation, err := u.aiService.ValidateOrder(callCtx, lines)
	if err != nil {
		return false, []string{fmt.Sprintf("System error while validating order: %v", err)}
	}
	return validation.Valid, validation.Errors
}

// correct maps each extracted name to its closest catalog name. When
// the corrector is unavailable the lines pass through uncorrected and
// the unknown-product check decides their fate.
func (u *orderUsecase) correct(ctx context.Context, lines []ai.Line, names []string) []ai.Line {
	callCtx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	corrected, err := u.aiService.CorrectProductNames(callCtx, lines, names)
	if err != nil {
		log.Printf("[OrderUsecase] Product name correction unavailable, using extracted names: %v", err)
		return lines
	}
	return corrected
}

func unknownProducts(lines []ai.Line, names []string) []string {
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	var unknown []string
	for _, line := range lines {
		if _, ok := known[line.Product]; !ok {
			unknown = append(unknown, line.Product)
		}
	}
	return unknown
}

// unknownProductReasons builds the rejection reasons, one suggestion
// per unknown name when the catalog has a close enough match.
func (u *orderUsecase) unknownProductReasons(unknown, names []string) []string {
	reasons := []string{
		fmt.Sprintf("The following products are not in our inventory: %s", strings.Join(unknown, ", ")),
	}
	for _, name := range unknown {
		if suggestion := fuzzy.Suggest(name, names); suggestion != "" {
			reasons = append(reasons, fmt.Sprintf("Did you mean %q instead of %q?", suggestion, name))
		}
	}
	return reasons
}

// resolveCustomer applies the profile backfill and completeness rules.
// A nil details return means the order does not proceed; the outcome
// and error say why.
func (u *orderUsecase) resolveCustomer(ctx context.Context, email string, inline *ai.CustomerDetails) (*customerdomain.Details, domain.Outcome, error) {
	existing, err := u.customers.FindByEmail(email)
	if err != nil {
		u.recordStoreFailure(email, fmt.Errorf("failed to look up customer: %w", err))
		return nil, "", err
	}

	var details customerdomain.Details
	if inline != nil {
		details = customerdomain.Details{
			Name:    inline.Name,
			Email:   inline.Email,
			Phone:   inline.Phone,
			Address: inline.Address,
		}
	}

	if existing != nil {
		// A known sender with a partial inline profile gets the stored
		// profile wholesale, never a field-by-field mix
		if inline == nil || details.Name == "" || details.Email == "" || details.Phone == "" {
			details = customerdomain.Details{
				Name:    existing.Name,
				Email:   existing.Email,
				Phone:   existing.Phone,
				Address: existing.Address,
			}
		}
		if !details.Complete() {
			log.Printf("[OrderUsecase] Customer details for %s are incomplete", email)
			u.dispatcher.SendOrderIssue(ctx, email, []string{
				"Your customer details are incomplete. Please update your information.",
			})
			return nil, domain.OutcomeRejected, nil
		}
		return &details, "", nil
	}

	if inline == nil || !details.Complete() {
		log.Printf("[OrderUsecase] Unknown sender %s with incomplete details", email)
		u.dispatcher.SendOrderIssue(ctx, email, []string{
			"We could not find your details in our system, and the provided details are incomplete. " +
				"Please provide your name, email, phone, and address to create an account and process your order.",
		})
		return nil, domain.OutcomeRejected, nil
	}

	customer := &customerdomain.Customer{
		Name:       details.Name,
		Email:      details.Email,
		Phone:      details.Phone,
		Address:    details.Address,
		PastOrders: []string{},
	}
	if err := u.customers.Create(customer); err != nil {
		u.recordStoreFailure(email, fmt.Errorf("failed to create customer: %w", err))
		return nil, "", err
	}
	log.Printf("[OrderUsecase] New customer %s added", email)
	return &details, "", nil
}

// insertOrder runs duplicate suppression and persists the order.
func (u *orderUsecase) insertOrder(ctx context.Context, email, date, timeOfDay string, details *customerdomain.Details, corrected []ai.Line) (domain.Outcome, error) {
	lines := toDomainLines(corrected)

	sinceDate, sinceTime, err := windowThresholds(date, timeOfDay, duplicateWindow)
	if err != nil {
		u.recordStoreFailure(email, fmt.Errorf("malformed event timestamp %q %q: %w", date, timeOfDay, err))
		return "", err
	}

	existing, err := u.orders.FindDuplicate(email, lines, sinceDate, sinceTime)
	if err != nil {
		u.recordStoreFailure(email, fmt.Errorf("duplicate check failed: %w", err))
		return "", err
	}
	if existing != nil {
		log.Printf("[OrderUsecase] Duplicate order from %s detected, not added", email)
		u.errors.Record(errorlog.Entry{
			Email:   email,
			Message: "Duplicate order entry detected within the suppression window",
			OrderID: existing.ID,
			Source:  errorlog.SourceCustomer,
		})
		return domain.OutcomeDuplicate, nil
	}

	if !u.canFulfill(lines) {
		log.Printf("[OrderUsecase] Order from %s cannot be fulfilled from current stock", email)
	}

	order := &domain.Order{
		Name:     details.Name,
		Phone:    details.Phone,
		Email:    email,
		Date:     date,
		Time:     timeOfDay,
		Products: lines,
		Status:   domain.StatusPending,
	}
	if err := u.orders.Create(order); err != nil {
		u.recordStoreFailure(email, fmt.Errorf("failed to insert order: %w", err))
		return "", err
	}
	log.Printf("[OrderUsecase] Order %s added for %s", order.ID, email)

	if err := u.customers.AppendOrder(email, order.ID); err != nil {
		// The order exists either way; the missing history reference is
		// logged, not fatal
		u.recordStoreFailure(email, fmt.Errorf("failed to append order %s to customer history: %w", order.ID, err))
	}

	u.dispatcher.SendAcknowledgment(ctx, order)
	return domain.OutcomeNewOrder, nil
}

// canFulfill reports whether current stock covers every line. The
// result is informational only; orders are accepted regardless.
func (u *orderUsecase) canFulfill(lines []domain.Line) bool {
	for _, line := range lines {
		item, err := u.inventory.FindByName(line.Name)
		if err != nil || item == nil || item.Quantity < line.Quantity {
			return false
		}
	}
	return true
}

func (u *orderUsecase) ProcessOrderChange(ctx context.Context, email, date, timeOfDay, text string) (domain.Outcome, error) {
	log.Printf("[OrderUsecase] Processing order change from %s", email)
	extracted := u.extract(ctx, email, text)

	latest, err := u.orders.FindLatestByEmail(email)
	if err != nil {
		u.recordStoreFailure(email, fmt.Errorf("failed to look up latest order: %w", err))
		u.dispatcher.SendOrderIssue(ctx, email, []string{"An error occurred while updating your order."})
		return "", err
	}

	// No modifiable order to change: treat the request as a new order
	if latest == nil || !latest.Status.Modifiable() {
		return u.processExtracted(ctx, email, date, timeOfDay, extracted)
	}

	if extracted == nil || len(extracted.Orders) == 0 {
		log.Printf("[OrderUsecase] No change details found in email from %s", email)
		u.dispatcher.SendOrderIssue(ctx, email, []string{
			"No order details were found in your email. Please send a valid order.",
		})
		return domain.OutcomeRejected, nil
	}

	merged := u.mergeLines(ctx, latest.Products, extracted.Orders)

	if err := u.orders.ReplaceProducts(latest.ID, merged); err != nil {
		u.recordStoreFailure(email, fmt.Errorf("failed to update order %s: %w", latest.ID, err))
		u.dispatcher.SendOrderIssue(ctx, email, []string{"An error occurred while updating your order."})
		return "", err
	}

	updated, err := u.orders.FindByID(latest.ID)
	if err != nil || updated == nil {
		// The update itself succeeded; confirm with the merged view
		updated = latest
		updated.Products = merged
	}
	log.Printf("[OrderUsecase] Order %s updated for %s", latest.ID, email)
	u.dispatcher.SendUpdateConfirmation(ctx, email, updated)
	return domain.OutcomeModified, nil
}

func (u *orderUsecase) GetOrders() ([]*domain.Order, error) {
	return u.orders.FindAll()
}

func (u *orderUsecase) GetOrderByID(id string) (*domain.Order, error) {
	return u.orders.FindByID(id)
}

func (u *orderUsecase) UpdateStatus(ctx context.Context, orderLink string, status domain.Status) (*domain.Order, error) {
	order, err := u.orders.UpdateStatusByLink(orderLink, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, nil
	}
	if status == domain.StatusFulfilled {
		u.dispatcher.SendInvoice(ctx, order)
	}
	return order, nil
}

func (u *orderUsecase) recordStoreFailure(email string, err error) {
	log.Printf("[OrderUsecase] %v", err)
	u.errors.Record(errorlog.Entry{
		Email:   email,
		Message: err.Error(),
		Source:  errorlog.SourceSystem,
	})
}

func toDomainLines(lines []ai.Line) []domain.Line {
	out := make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, domain.Line{Name: line.Product, Quantity: line.Quantity})
	}
	return out
}

// windowThresholds shifts the event timestamp back by the window and
// re-splits it into the store's independent date and time fields.
func windowThresholds(date, timeOfDay string, window time.Duration) (string, string, error) {
	at, err := time.Parse(domain.DateLayout+" "+domain.TimeLayout, date+" "+timeOfDay)
	if err != nil {
		return "", "", err
	}
	since := at.Add(-window)
	return since.Format(domain.DateLayout), since.Format(domain.TimeLayout), nil
}
