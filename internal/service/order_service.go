package service

import (
	"context"
	"fmt"
	"time"

	"gemstore/internal/domain"
	"gemstore/internal/dto"
	"gemstore/internal/infra"
	"gemstore/internal/model"
	"gemstore/internal/repository"
	"gemstore/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns order creation and the status transition workflow.
type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest, actorID *uuid.UUID) (*dto.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	InvoicePath(ctx context.Context, id uuid.UUID) (string, error)
}

type orderService struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	inventory   InventoryService
	settings    repository.SettingsRepository
	dispatcher  *worker.Dispatcher
	invoiceRoot string
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	inventory InventoryService,
	settings repository.SettingsRepository,
	dispatcher *worker.Dispatcher,
	invoiceRoot string,
) OrderService {
	return &orderService{
		orders:      orders,
		products:    products,
		inventory:   inventory,
		settings:    settings,
		dispatcher:  dispatcher,
		invoiceRoot: invoiceRoot,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ───────────────────────────────────────────────────────────────────
// Manual/admin order entry:
//   1. Resolve products and prices (pre-flight, outside TX)
//   2. BEGIN TX: allocate order number, create order + items with status
//      PENDING, deduct stock per item (row-locked) writing one OUT movement
//      referencing the order
//   3. COMMIT — any insufficient line aborts the whole order

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
		subtotal  decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, domain.NewValidation("invalid product_id %q", item.ProductID)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, domain.ErrNotFound)
		}
		if !p.Active {
			return nil, domain.NewValidation("product %s is inactive and cannot be ordered", p.Name)
		}
		lineSubtotal := p.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.SalePrice,
			quantity:  item.Quantity,
			subtotal:  lineSubtotal,
		})
	}

	var order model.Order
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		number, err := s.orders.NextOrderNumber(tx)
		if err != nil {
			return err
		}

		order = model.Order{
			Number:        number,
			Status:        model.OrderPending,
			PaymentStatus: model.PaymentPending,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			ShippingAddr:  req.ShippingAddr,
			Subtotal:      subtotal,
			DiscountTotal: decimal.Zero,
			Total:         subtotal,
			Note:          req.Note,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				ProductID: r.productID,
				Name:      r.name,
				Quantity:  r.quantity,
				UnitPrice: r.price,
				Subtotal:  r.subtotal,
			})
		}

		if err := s.orders.CreateTx(tx, &order); err != nil {
			return err
		}

		for _, r := range resolved {
			reason := fmt.Sprintf("Order #%d", number)
			if err := s.inventory.CommitStockTx(tx, r.productID, r.quantity, reason, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return orderToResponse(&order), nil
}

// ── UpdateStatus ─────────────────────────────────────────────────────────────
// Validates the requested transition against the static flow graph unless
// force is set, applies it together with any payment status change, appends
// an audit event, and restocks items when the order enters CANCELLED or
// RETURNED. Everything happens in one transaction.

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest, actorID *uuid.UUID) (*dto.OrderResponse, error) {
	var requestedStatus *model.OrderStatus
	if req.Status != "" {
		st := model.OrderStatus(req.Status)
		if !st.Valid() {
			return nil, domain.NewValidation("unknown order status %q", req.Status)
		}
		requestedStatus = &st
	}
	var requestedPayment *model.PaymentStatus
	if req.PaymentStatus != "" {
		ps := model.PaymentStatus(req.PaymentStatus)
		if !ps.Valid() {
			return nil, domain.NewValidation("unknown payment status %q", req.PaymentStatus)
		}
		requestedPayment = &ps
	}
	if requestedStatus == nil && requestedPayment == nil {
		return nil, domain.NewValidation("nothing to update: provide status and/or payment_status")
	}

	var updated *model.Order
	var notifyStatus *model.OrderStatus

	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDTx(tx, id)
		if err != nil {
			return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}

		fromStatus := order.Status
		fromPayment := order.PaymentStatus
		statusChanged := requestedStatus != nil && *requestedStatus != fromStatus
		paymentChanged := requestedPayment != nil && *requestedPayment != fromPayment

		if !statusChanged && !paymentChanged {
			// No-op is always accepted; nothing to persist or audit.
			updated = order
			return nil
		}

		if statusChanged {
			if !model.CanTransition(fromStatus, *requestedStatus) {
				if !req.Force {
					return &domain.InvalidTransitionError{
						From: string(fromStatus),
						To:   string(*requestedStatus),
					}
				}
				log.Warn().
					Str("order_id", order.ID.String()).
					Str("from", string(fromStatus)).
					Str("to", string(*requestedStatus)).
					Msg("forced order status transition (admin override)")
			}
			order.Status = *requestedStatus
		}
		if paymentChanged {
			order.PaymentStatus = *requestedPayment
		}

		if err := s.orders.UpdateTx(tx, order); err != nil {
			return err
		}

		event := model.OrderStatusEvent{
			OrderID:    order.ID,
			FromStatus: fromStatus,
			ToStatus:   order.Status,
			Forced:     statusChanged && req.Force && !model.CanTransition(fromStatus, *requestedStatus),
			Note:       req.Note,
			ActorID:    actorID,
		}
		if paymentChanged {
			pf, pt := fromPayment, order.PaymentStatus
			event.PaymentFrom = &pf
			event.PaymentTo = &pt
		}
		if err := s.orders.CreateEventTx(tx, &event); err != nil {
			return err
		}

		// Entering CANCELLED or RETURNED releases the stock committed at
		// creation. Guarded on the previous status so a forced move between
		// the two terminal states cannot restock twice.
		if statusChanged && isRestockStatus(order.Status) && !isRestockStatus(fromStatus) {
			for _, item := range order.Items {
				reason := fmt.Sprintf("Order #%d %s", order.Number, order.Status)
				if err := s.inventory.RestockTx(tx, item.ProductID, item.Quantity, reason, order.ID, actorID); err != nil {
					return err
				}
			}
		}

		if statusChanged {
			st := order.Status
			notifyStatus = &st
		}
		updated = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Notification is best-effort and outside the transaction.
	if notifyStatus != nil && s.dispatcher != nil && updated.CustomerEmail != nil && *updated.CustomerEmail != "" {
		if cfg, err := s.settings.Get(ctx); err == nil && cfg.NotifyOnStatusChange {
			payload := worker.EmailJobPayload{
				ToEmail: *updated.CustomerEmail,
				Subject: fmt.Sprintf("Order #%d is now %s", updated.Number, *notifyStatus),
				Body: fmt.Sprintf("Hello %s,\n\nYour order #%d is now %s.\n\n%s",
					updated.CustomerName, updated.Number, *notifyStatus, cfg.StoreName),
			}
			if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
				log.Error().Err(err).Str("order_id", updated.ID.String()).Msg("failed to enqueue status email")
			}
		}
	}

	return orderToResponse(updated), nil
}

// isRestockStatus reports whether arriving at status releases committed stock.
func isRestockStatus(s model.OrderStatus) bool {
	return s == model.OrderCancelled || s == model.OrderReturned
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return orderToResponse(order), nil
}

// InvoicePath renders the order's invoice PDF on first request and returns
// the path on disk. Re-renders on every call so status and payment changes
// are reflected; invoices are cheap single-page documents.
func (s *orderService) InvoicePath(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	return infra.GenerateInvoicePDF(order, cfg.StoreName, cfg.Currency, s.invoiceRoot)
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Status != "" && !model.OrderStatus(filter.Status).Valid() {
		return nil, domain.NewValidation("unknown order status %q", filter.Status)
	}
	if filter.PaymentStatus != "" && !model.PaymentStatus(filter.PaymentStatus).Valid() {
		return nil, domain.NewValidation("unknown payment status %q", filter.PaymentStatus)
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		items[i] = *orderToResponse(&orders[i])
	}
	return &dto.OrderListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		Number:        o.Number,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ShippingAddr:  o.ShippingAddr,
		Subtotal:      o.Subtotal,
		DiscountTotal: o.DiscountTotal,
		Total:         o.Total,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	for _, ev := range o.Events {
		evResp := dto.OrderStatusEventResponse{
			FromStatus: string(ev.FromStatus),
			ToStatus:   string(ev.ToStatus),
			Forced:     ev.Forced,
			Note:       ev.Note,
			CreatedAt:  ev.CreatedAt.UTC().Format(time.RFC3339),
		}
		if ev.PaymentFrom != nil {
			pf := string(*ev.PaymentFrom)
			evResp.PaymentFrom = &pf
		}
		if ev.PaymentTo != nil {
			pt := string(*ev.PaymentTo)
			evResp.PaymentTo = &pt
		}
		resp.Events = append(resp.Events, evResp)
	}
	return resp
}
