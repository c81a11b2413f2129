package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DefaultCreateOrderMaxAttempts bounds the retries caused by tracking code collisions.
const DefaultCreateOrderMaxAttempts = 3

// CreateOrderCommandHandler creates an order in a single transaction: it reads the
// customer, reserves stock for every line, then stores the order, its line items
// and its first history entry. Any failure rolls the whole transaction back, which
// also releases every reservation made so far.
type CreateOrderCommandHandler struct {
	uowFactory  CreateOrderUoWFactory
	codes       ports.TrackingCodeGenerator
	assembler   services.OrderAssembler
	maxAttempts int
	logger      *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	codes ports.TrackingCodeGenerator,
	maxAttempts int,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultCreateOrderMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		codes:       codes,
		assembler:   services.NewOrderAssembler(),
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "create-order-handler"),
	}
}

// Handle returns the created order. A tracking code collision restarts the whole
// transaction with a fresh order id and code; once the attempts are exhausted the
// collision is returned as errs.ErrConflict.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		created, err := h.create(ctx, cmd)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, order.ErrTrackingCodeTaken) {
			return nil, err
		}

		lastErr = err
		h.logger.WarnContext(ctx, "tracking code collision, retrying order creation",
			"attempt", attempt, "maxAttempts", h.maxAttempts, "customerID", cmd.CustomerID().String())
	}

	return nil, lastErr
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	trackingCode, err := h.codes.Generate()
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	productRepo := uow.ProductRepository()
	ids := cmd.ProductIDs()

	products, err := productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []error
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, errs.NewObjectNotFoundError("product", id.String()))
		}
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	quantities := make(map[kernel.UUID]int, len(ids))
	for _, item := range cmd.Items() {
		quantities[item.ProductID] = item.Quantity
	}

	// Ascending id order keeps concurrent creations from locking rows in opposite orders.
	lockOrder := slices.Clone(ids)
	slices.SortFunc(lockOrder, kernel.UUID.Compare)

	for _, id := range lockOrder {
		reserved, reserveErr := productRepo.Reserve(ctx, id, quantities[id])
		if reserveErr != nil {
			return nil, reserveErr
		}
		products[id] = reserved
	}

	lines := make([]services.ReservedLine, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, services.ReservedLine{Product: products[id], Quantity: quantities[id]})
	}

	created, err := h.assembler.Assemble(kernel.NewUUID(), c, lines, trackingCode, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	entry, err := created.InitialHistoryEntry()
	if err != nil {
		return nil, err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
