package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// UpdateTrackingCodeCommandHandler replaces an order's tracking code. A code that
// belongs to another order fails with errs.ErrConflict.
type UpdateTrackingCodeCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      OrderCache
	logger     *slog.Logger
}

func NewUpdateTrackingCodeCommandHandler(
	uowFactory OrderUoWFactory,
	cache OrderCache,
	logger *slog.Logger,
) UpdateTrackingCodeCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateTrackingCodeCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "update-tracking-code-handler"),
	}
}

func (h UpdateTrackingCodeCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingCodeCommand) (*order.Order, error) {
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

	if err = o.AssignTrackingCode(cmd.TrackingCode(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	refreshCache(ctx, h.cache, h.logger, o)
	return o, nil
}
