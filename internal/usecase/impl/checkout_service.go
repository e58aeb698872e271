package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	deliveryctx "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService walks a customer from a cart snapshot to a finalized order.
type checkoutService struct {
	cart          usecase.CartUsecase
	sessionRepo   repository.CheckoutSessionRepository
	orderRepo     repository.OrderRepository
	txManager     repository.TransactionManager
	publisher     service.EventPublisher
	qrcodeService service.QRCodeService
	config        *config.Config
	logger        *slog.Logger

	now func() time.Time
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Cart          usecase.CartUsecase
	SessionRepo   repository.CheckoutSessionRepository
	OrderRepo     repository.OrderRepository
	TxManager     repository.TransactionManager
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewCheckoutService creates a new checkout service instance.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		cart:          params.Cart,
		sessionRepo:   params.SessionRepo,
		orderRepo:     params.OrderRepo,
		txManager:     params.TxManager,
		publisher:     params.Publisher,
		qrcodeService: params.QRCodeService,
		config:        params.Config,
		logger:        params.Logger,
		now:           time.Now,
	}
}

// Begin snapshots the cart and assigns the session's order number. Calling
// Begin again before submission reuses the existing number and refreshes the
// snapshot.
func (s *checkoutService) Begin(ctx context.Context) (*usecase.CheckoutQuote, error) {
	lines := s.cart.Snapshot(ctx)
	if len(lines) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	number := ""
	existing, err := s.sessionRepo.LoadSession(ctx)
	switch {
	case err == nil:
		number = existing.OrderNumber
	case errors.Is(err, repository.ErrSessionNotFound):
		number = s.generateOrderNumber()
	default:
		return nil, errors.Wrap(err, "failed to load checkout session")
	}

	session := &entity.CheckoutSession{
		OrderNumber: number,
		Lines:       lines,
		StartedAt:   s.now(),
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout session")
	}

	return s.quoteFromSession(session, entity.DeliveryMethodPickup), nil
}

// Quote prices the current session under the given delivery method.
func (s *checkoutService) Quote(ctx context.Context, delivery entity.DeliveryMethod) (*usecase.CheckoutQuote, error) {
	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	return s.quoteFromSession(session, delivery), nil
}

// Submit finalizes the order. History append, last-order overwrite, cart
// clear and session clear commit as one transaction; the order-placed event
// is published after the commit.
func (s *checkoutService) Submit(ctx context.Context, input *usecase.SubmitOrderInput) (*entity.Order, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := session.Subtotal()
	deliveryCost := s.deliveryCost(input.Delivery)

	order := &entity.Order{
		ID:     uuid.New(),
		Number: session.OrderNumber,
		Customer: entity.Customer{
			Name:     input.Name,
			Phone:    input.Phone,
			Address:  input.Address,
			Payment:  input.Payment,
			Delivery: input.Delivery,
		},
		Lines:        session.Lines,
		Subtotal:     subtotal,
		DeliveryCost: deliveryCost,
		Total:        subtotal + deliveryCost,
		CreatedAt:    s.now(),
	}

	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		orders := factory.NewOrderRepository()
		if err := orders.AppendOrder(ctx, order); err != nil {
			return err
		}
		if err := orders.SaveLastOrder(ctx, order); err != nil {
			return err
		}
		if err := factory.NewCartRepository().Clear(ctx); err != nil {
			return err
		}

		return factory.NewCheckoutSessionRepository().Clear(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to finalize order")
	}

	// Empty the live cart as well; its persisted copy is already gone.
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear cart after order submission",
			slog.Any("error", err),
		)
	}

	s.publishOrderPlaced(ctx, order)

	s.logger.Info("Order submitted",
		slog.String("order_number", order.Number),
		slog.Float64("total", order.Total),
	)

	return order, nil
}

// LastOrder returns the most recently finalized order.
func (s *checkoutService) LastOrder(ctx context.Context) (*entity.Order, error) {
	order, err := s.orderRepo.FindLastOrder(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load last order")
	}

	return order, nil
}

// OrderByNumber looks an order up in the history.
func (s *checkoutService) OrderByNumber(ctx context.Context, number string) (*entity.Order, error) {
	order, err := s.orderRepo.FindOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// OrderQR renders the pickup QR code PNG for an order number.
func (s *checkoutService) OrderQR(ctx context.Context, number string) ([]byte, error) {
	order, err := s.OrderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	png, err := s.qrcodeService.GenerateOrderQR(order.Number)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}

// ResolveScannedQR decodes a scanned pickup QR payload and returns the order
// it refers to.
func (s *checkoutService) ResolveScannedQR(ctx context.Context, qrData string) (*entity.Order, error) {
	number, err := s.qrcodeService.ParseOrderQR(qrData)
	if err != nil {
		return nil, domainerrors.ErrInvalidQRCode.WrapMessage(err.Error())
	}

	return s.OrderByNumber(ctx, number)
}

// loadSession maps session absence to the checkout domain error.
func (s *checkoutService) loadSession(ctx context.Context) (*entity.CheckoutSession, error) {
	session, err := s.sessionRepo.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrNoCheckoutSession
		}

		return nil, errors.Wrap(err, "failed to load checkout session")
	}

	return session, nil
}

// generateOrderNumber builds the human-facing order number: the configured
// prefix plus the last eight digits of the current unix-millisecond clock.
func (s *checkoutService) generateOrderNumber() string {
	prefix := "BL"
	if s.config.Checkout != nil && s.config.Checkout.OrderNumberPrefix != "" {
		prefix = s.config.Checkout.OrderNumberPrefix
	}

	millis := fmt.Sprintf("%d", s.now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	return prefix + millis
}

// deliveryCost returns the flat courier surcharge; pickup is free.
func (s *checkoutService) deliveryCost(delivery entity.DeliveryMethod) float64 {
	if delivery != entity.DeliveryMethodCourier {
		return 0
	}
	if s.config.Checkout != nil {
		return s.config.Checkout.DeliverySurcharge
	}

	return 0
}

func (s *checkoutService) quoteFromSession(session *entity.CheckoutSession, delivery entity.DeliveryMethod) *usecase.CheckoutQuote {
	subtotal := session.Subtotal()
	deliveryCost := s.deliveryCost(delivery)

	return &usecase.CheckoutQuote{
		OrderNumber:  session.OrderNumber,
		Lines:        session.Lines,
		Subtotal:     subtotal,
		DeliveryCost: deliveryCost,
		Total:        subtotal + deliveryCost,
	}
}

// publishOrderPlaced emits the order-placed event. Publishing is best effort;
// the order is already committed when this runs.
func (s *checkoutService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	itemCount := 0
	for _, line := range order.Lines {
		itemCount += line.Quantity
	}

	event := &service.OrderPlacedEvent{
		RequestID:    deliveryctx.GetRequestIDFromContext(ctx),
		OrderID:      order.ID.String(),
		OrderNumber:  order.Number,
		Delivery:     string(order.Customer.Delivery),
		ItemCount:    itemCount,
		Subtotal:     order.Subtotal,
		DeliveryCost: order.DeliveryCost,
		Total:        order.Total,
	}

	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Warn("Failed to publish order-placed event",
			slog.String("order_number", order.Number),
			slog.Any("error", err),
		)
	}
}

// validateSubmitInput enforces the checkout form rules that depend on field
// combinations; single-field constraints are checked at the API edge.
func validateSubmitInput(input *usecase.SubmitOrderInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed
	}
	if input.Name == "" || input.Phone == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("name and phone are required")
	}
	if input.Delivery == entity.DeliveryMethodCourier && input.Address == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("address is required for courier delivery")
	}

	return nil
}
