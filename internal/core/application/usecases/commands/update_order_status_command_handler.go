package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler changes an order's status and appends the
// matching history entry in the same transaction. The history timestamp is taken
// from the server clock.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.TransitionPolicy
	cache      OrderCache
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler uses order.PermissiveTransitionPolicy when policy is nil.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.TransitionPolicy,
	cache OrderCache,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	if policy == nil {
		policy = order.PermissiveTransitionPolicy{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
		logger:     logger.With("component", "update-order-status-handler"),
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	entry, err := o.ChangeStatus(h.policy, cmd.Status(), cmd.Comment(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	refreshCache(ctx, h.cache, h.logger, o)
	return o, nil
}

// refreshCache writes the committed view so that a concurrent read-through fill,
// which only populates absent keys, cannot put back the pre-commit view. When the
// write fails the entry is dropped; if that fails too it lives until its TTL.
func refreshCache(ctx context.Context, cache OrderCache, logger *slog.Logger, o *order.Order) {
	if cache == nil {
		return
	}
	err := cache.Refresh(ctx, o)
	if err == nil {
		return
	}
	logger.WarnContext(ctx, "failed to refresh cached order", "orderID", o.ID().String(), "error", err)
	if err = cache.Invalidate(ctx, o.ID()); err != nil {
		logger.WarnContext(ctx, "failed to invalidate cached order", "orderID", o.ID().String(), "error", err)
	}
}
