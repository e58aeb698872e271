package impl

import (
	"context"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	checkout  usecase.CheckoutUsecase
	cart      usecase.CartUsecase
	repos     *memRepos
	publisher *stubPublisher
	qr        *stubQRService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	repos := newMemRepos()
	cart := newTestCartService(t, cartTestCatalog(), repos.cart)
	publisher := &stubPublisher{}
	qr := &stubQRService{png: []byte{0x89, 'P', 'N', 'G'}}

	checkout := NewCheckoutService(CheckoutServiceParams{
		Cart:          cart,
		SessionRepo:   repos.sessions,
		OrderRepo:     repos.orders,
		TxManager:     repos,
		Publisher:     publisher,
		QRCodeService: qr,
		Config: &config.Config{
			Checkout: &config.CheckoutConfig{
				DeliverySurcharge: 200,
				OrderNumberPrefix: "BL",
				MaxLineQuantity:   20,
			},
		},
		Logger: discardLogger(),
	})

	return &checkoutFixture{
		checkout:  checkout,
		cart:      cart,
		repos:     repos,
		publisher: publisher,
		qr:        qr,
	}
}

func TestCheckoutService_BeginEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Begin(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_BeginAssignsOrderNumber(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 2))

	quote, err := f.checkout.Begin(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(quote.OrderNumber, "BL"))
	assert.Len(t, quote.OrderNumber, 10)
	require.Len(t, quote.Lines, 1)
	assert.InDelta(t, 300.0, quote.Subtotal, 0.001)
	assert.Zero(t, quote.DeliveryCost)
}

func TestCheckoutService_BeginTwiceReusesNumber(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 1))
	first, err := f.checkout.Begin(ctx)
	require.NoError(t, err)

	// The cart changed between checkout starts; the number survives, the
	// snapshot refreshes.
	require.NoError(t, f.cart.AddItem(ctx, 2, 1))
	second, err := f.checkout.Begin(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.Len(t, second.Lines, 2)
}

func TestCheckoutService_QuoteDeliverySurcharge(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 2))
	_, err := f.checkout.Begin(ctx)
	require.NoError(t, err)

	courier, err := f.checkout.Quote(ctx, entity.DeliveryMethodCourier)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, courier.DeliveryCost, 0.001)
	assert.InDelta(t, 500.0, courier.Total, 0.001)

	pickup, err := f.checkout.Quote(ctx, entity.DeliveryMethodPickup)
	require.NoError(t, err)
	assert.Zero(t, pickup.DeliveryCost)
	assert.InDelta(t, 300.0, pickup.Total, 0.001)
}

func TestCheckoutService_QuoteWithoutSession(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Quote(context.Background(), entity.DeliveryMethodPickup)
	assert.ErrorIs(t, err, domainerrors.ErrNoCheckoutSession)
}

func TestCheckoutService_SubmitFinalizesOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 2))
	quote, err := f.checkout.Begin(ctx)
	require.NoError(t, err)

	order, err := f.checkout.Submit(ctx, &usecase.SubmitOrderInput{
		Name:     "Anna",
		Phone:    "+79001234567",
		Address:  "Lenina 5",
		Payment:  entity.PaymentMethodCash,
		Delivery: entity.DeliveryMethodCourier,
	})
	require.NoError(t, err)

	assert.Equal(t, quote.OrderNumber, order.Number)
	assert.InDelta(t, 300.0, order.Subtotal, 0.001)
	assert.InDelta(t, 200.0, order.DeliveryCost, 0.001)
	assert.InDelta(t, 500.0, order.Total, 0.001)
	assert.NotZero(t, order.ID)

	// History and last-order slot both hold the order.
	history, err := f.repos.orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	last, err := f.checkout.LastOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, order.Number, last.Number)

	// Cart and session are gone.
	assert.Empty(t, f.cart.Summary(ctx).Lines)
	_, err = f.checkout.Quote(ctx, entity.DeliveryMethodPickup)
	assert.ErrorIs(t, err, domainerrors.ErrNoCheckoutSession)

	// The order-placed event went out.
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, order.Number, event.OrderNumber)
	assert.Equal(t, "delivery", event.Delivery)
	assert.Equal(t, 2, event.ItemCount)
	assert.InDelta(t, 500.0, event.Total, 0.001)
}

func TestCheckoutService_SubmitValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 1))
	_, err := f.checkout.Begin(ctx)
	require.NoError(t, err)

	// Courier delivery requires an address.
	_, err = f.checkout.Submit(ctx, &usecase.SubmitOrderInput{
		Name:     "Anna",
		Phone:    "+79001234567",
		Payment:  entity.PaymentMethodCash,
		Delivery: entity.DeliveryMethodCourier,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	// Pickup without an address is fine.
	_, err = f.checkout.Submit(ctx, &usecase.SubmitOrderInput{
		Name:     "Anna",
		Phone:    "+79001234567",
		Payment:  entity.PaymentMethodCard,
		Delivery: entity.DeliveryMethodPickup,
	})
	assert.NoError(t, err)
}

func TestCheckoutService_SubmitWithoutSession(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Submit(context.Background(), &usecase.SubmitOrderInput{
		Name:     "Anna",
		Phone:    "+79001234567",
		Payment:  entity.PaymentMethodCash,
		Delivery: entity.DeliveryMethodPickup,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNoCheckoutSession)
}

func TestCheckoutService_LastOrderNotFound(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.LastOrder(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCheckoutService_OrderByNumberAndQR(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 1))
	_, err := f.checkout.Begin(ctx)
	require.NoError(t, err)
	order, err := f.checkout.Submit(ctx, &usecase.SubmitOrderInput{
		Name:     "Anna",
		Phone:    "+79001234567",
		Payment:  entity.PaymentMethodCash,
		Delivery: entity.DeliveryMethodPickup,
	})
	require.NoError(t, err)

	found, err := f.checkout.OrderByNumber(ctx, order.Number)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	png, err := f.checkout.OrderQR(ctx, order.Number)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = f.checkout.OrderQR(ctx, "BL00000000")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCheckoutService_ResolveScannedQR(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, 1, 1))
	_, err := f.checkout.Begin(ctx)
	require.NoError(t, err)
	order, err := f.checkout.Submit(ctx, &usecase.SubmitOrderInput{
		Name:     "Anna",
		Phone:    "+79001234567",
		Payment:  entity.PaymentMethodCash,
		Delivery: entity.DeliveryMethodPickup,
	})
	require.NoError(t, err)

	f.qr.parseNumber = order.Number
	found, err := f.checkout.ResolveScannedQR(ctx, `{"order_number":"`+order.Number+`","type":"order-pickup"}`)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	// A payload the parser rejects surfaces as an invalid-code error.
	f.qr.parseNumber = ""
	f.qr.parseErr = errors.New("unexpected QR code type")
	_, err = f.checkout.ResolveScannedQR(ctx, "not a pickup code")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQRCode)

	// A well-formed payload for an unknown order is not found.
	f.qr.parseNumber = "BL00000000"
	f.qr.parseErr = nil
	_, err = f.checkout.ResolveScannedQR(ctx, `{"order_number":"BL00000000","type":"order-pickup"}`)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
