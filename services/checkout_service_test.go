package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// ---- mock gateway ----

type mockGateway struct {
	params *stripe.CheckoutSessionParams
	sess   *stripe.CheckoutSession
	err    error
}

func (m *mockGateway) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return m.sess, nil
}

func newCheckoutService(gateway *mockGateway) *services.CheckoutService {
	return services.NewCheckoutService(gateway, services.CheckoutConfig{
		SiteURL:          "https://shop.example.com",
		Currency:         "usd",
		DepositThreshold: 150,
	}, zap.NewNop())
}

func checkoutRequest(items []models.CartItem) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		Customer: models.CustomerInfo{
			FirstName: "Jamie",
			LastName:  "Rivera",
			Email:     "jamie@example.com",
			Phone:     "718-555-0199",
		},
		Delivery: models.DeliveryDetails{
			Address: "123 Bedford Ave",
			Borough: "Brooklyn",
			City:    "New York",
			Zip:     "11211",
			Date:    "2026-09-12",
			Time:    "10:00-12:00",
		},
		Items:         items,
		PaymentMethod: "stripe",
	}
}

func TestCreateSession_EmptyCart(t *testing.T) {
	gateway := &mockGateway{}
	svc := newCheckoutService(gateway)

	_, serviceErr := svc.CreateSession(context.Background(), checkoutRequest(nil))

	assert.NotNil(t, serviceErr)
	assert.Equal(t, 400, serviceErr.StatusCode)
	assert.Nil(t, gateway.params)
}

func TestCreateSession_InvalidPaymentMethod(t *testing.T) {
	gateway := &mockGateway{}
	svc := newCheckoutService(gateway)

	req := checkoutRequest([]models.CartItem{{ID: "p1", Name: "Cheesecake", Price: 30, Quantity: 1}})
	req.PaymentMethod = "bitcoin"

	_, serviceErr := svc.CreateSession(context.Background(), req)

	assert.NotNil(t, serviceErr)
	assert.Equal(t, 400, serviceErr.StatusCode)
}

func TestCreateSession_FullPayment(t *testing.T) {
	gateway := &mockGateway{sess: &stripe.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"}}
	svc := newCheckoutService(gateway)

	items := []models.CartItem{
		{ID: "p1", Name: "Classic Cheesecake", Price: 30, Quantity: 2},
		{ID: "p2", Name: "Strawberry Cheesecake", Price: 40, Quantity: 1},
	}
	url, serviceErr := svc.CreateSession(context.Background(), checkoutRequest(items))

	assert.Nil(t, serviceErr)
	assert.Equal(t, "https://pay.example.com/cs_1", url)

	assert.Len(t, gateway.params.LineItems, 2)
	assert.Equal(t, int64(3000), *gateway.params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *gateway.params.LineItems[0].Quantity)
	assert.Equal(t, "jamie@example.com", *gateway.params.CustomerEmail)

	meta, err := services.DecodeSessionMetadata(gateway.params.Metadata)
	assert.NoError(t, err)
	assert.False(t, meta.IsDeposit)
	assert.Equal(t, 100.0, meta.Subtotal)
	assert.Equal(t, items, meta.Items)
	assert.True(t, strings.HasPrefix(meta.OrderNumber, "DRH-"))
	assert.Contains(t, *gateway.params.SuccessURL, "order="+meta.OrderNumber)
	assert.Contains(t, *gateway.params.SuccessURL, "{CHECKOUT_SESSION_ID}")
}

func TestCreateSession_DepositUsesSingleLineItem(t *testing.T) {
	gateway := &mockGateway{sess: &stripe.CheckoutSession{ID: "cs_2", URL: "https://pay.example.com/cs_2"}}
	svc := newCheckoutService(gateway)

	items := []models.CartItem{
		{ID: "p1", Name: "Cheesecake", Price: 40, Quantity: 1},
		{ID: "p2", Name: "Custom Wedding Cake", Price: 200, Quantity: 1},
	}
	_, serviceErr := svc.CreateSession(context.Background(), checkoutRequest(items))

	assert.Nil(t, serviceErr)
	assert.Len(t, gateway.params.LineItems, 1)
	assert.Equal(t, "Order Deposit (50%)", *gateway.params.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(10000), *gateway.params.LineItems[0].PriceData.UnitAmount)

	meta, err := services.DecodeSessionMetadata(gateway.params.Metadata)
	assert.NoError(t, err)
	assert.True(t, meta.IsDeposit)
	assert.Equal(t, 100.0, meta.DepositAmount)
	assert.Equal(t, 240.0, meta.Subtotal)
}

func TestCreateSession_GatewayFailure(t *testing.T) {
	gateway := &mockGateway{err: errors.New("stripe unavailable")}
	svc := newCheckoutService(gateway)

	items := []models.CartItem{{ID: "p1", Name: "Cheesecake", Price: 30, Quantity: 1}}
	_, serviceErr := svc.CreateSession(context.Background(), checkoutRequest(items))

	assert.NotNil(t, serviceErr)
	assert.Equal(t, 502, serviceErr.StatusCode)
}
