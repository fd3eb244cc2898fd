package services

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

const orderNumberPrefix = "DRH-"

// PaymentGateway is the slice of the Stripe client the checkout flow needs.
type PaymentGateway interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type CheckoutConfig struct {
	SiteURL          string
	Currency         string
	DepositThreshold float64
}

// CheckoutService prices a cart and builds the processor-hosted payment
// session. It never writes an order row: everything the webhook needs later
// is carried in the session metadata.
type CheckoutService struct {
	gateway PaymentGateway
	cfg     CheckoutConfig
	logger  *zap.Logger
}

func NewCheckoutService(gateway PaymentGateway, cfg CheckoutConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// NewOrderNumber produces a short human-readable order number. Uniqueness is
// probabilistic here; the durable guarantee is the order_number unique index
// at materialization time.
func NewOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return orderNumberPrefix + raw[:8]
}

// CreateSession validates the cart, computes the charge, and returns the URL
// of the processor-hosted payment page.
func (s *CheckoutService) CreateSession(ctx context.Context, req *models.CheckoutRequest) (string, *ServiceError) {
	if len(req.Items) == 0 {
		return "", &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}
	for _, item := range req.Items {
		if item.Price < 0 || item.Quantity < 1 {
			return "", &ServiceError{StatusCode: 400, Message: "Invalid cart item"}
		}
	}

	var methodTypes []*string
	switch req.PaymentMethod {
	case "stripe":
		methodTypes = stripe.StringSlice([]string{"card"})
	case "paypal":
		methodTypes = stripe.StringSlice([]string{"paypal"})
	default:
		return "", &ServiceError{StatusCode: 400, Message: "Invalid payment method"}
	}

	quote := ComputeQuote(req.Items, s.cfg.DepositThreshold)
	orderNumber := NewOrderNumber()

	metadata, err := EncodeSessionMetadata(SessionMetadata{
		OrderNumber:   orderNumber,
		CustomerName:  req.Customer.FirstName + " " + req.Customer.LastName,
		CustomerPhone: req.Customer.Phone,
		Delivery:      req.Delivery,
		Items:         req.Items,
		IsDeposit:     quote.HasCustomItems,
		Subtotal:      quote.Subtotal,
		DepositAmount: quote.DepositAmount,
	})
	if err != nil {
		s.logger.Error("Failed to encode session metadata", zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to prepare checkout"}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: methodTypes,
		LineItems:          s.buildLineItems(req.Items, quote, orderNumber),
		CustomerEmail:      stripe.String(req.Customer.Email),
		SuccessURL: stripe.String(fmt.Sprintf(
			"%s/checkout/success?session_id={CHECKOUT_SESSION_ID}&order=%s",
			s.cfg.SiteURL, orderNumber,
		)),
		CancelURL: stripe.String(s.cfg.SiteURL + "/checkout?cancelled=true"),
		Metadata:  metadata,
	}
	params.Context = ctx

	sess, err := s.gateway.CreateCheckoutSession(params)
	if err != nil {
		s.logger.Error("Stripe session creation failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return "", &ServiceError{StatusCode: 502, Message: "Failed to create payment session"}
	}

	s.logger.Info("Checkout session created",
		zap.String("order_number", orderNumber),
		zap.String("session_id", sess.ID),
		zap.Bool("deposit", quote.HasCustomItems),
		zap.Int64("amount_due_cents", quote.AmountDueCents),
	)

	return sess.URL, nil
}

// buildLineItems returns a single synthetic deposit line in deposit mode, or
// one line per cart item otherwise.
func (s *CheckoutService) buildLineItems(items []models.CartItem, quote Quote, orderNumber string) []*stripe.CheckoutSessionLineItemParams {
	if quote.HasCustomItems {
		return []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Order Deposit (50%)"),
						Description: stripe.String(fmt.Sprintf(
							"Deposit for order %s - Balance due upon delivery", orderNumber,
						)),
					},
					UnitAmount: stripe.Int64(quote.AmountDueCents),
				},
				Quantity: stripe.Int64(1),
			},
		}
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Image != "" {
			productData.Images = stripe.StringSlice([]string{item.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(s.cfg.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(UnitAmountCents(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	return lineItems
}
