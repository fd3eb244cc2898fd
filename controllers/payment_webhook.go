package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// WebhookVerifier verifies and parses an inbound processor event.
type WebhookVerifier interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

// OrderMaterializer turns a completed checkout session into a persisted order.
type OrderMaterializer interface {
	MaterializeFromSession(ctx context.Context, sess *stripe.CheckoutSession) (*models.Order, error)
}

type WebhookController struct {
	Stripe WebhookVerifier
	Orders OrderMaterializer
	Logger *zap.Logger
}

func NewWebhookController(stripeSvc WebhookVerifier, orders OrderMaterializer, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		Stripe: stripeSvc,
		Orders: orders,
		Logger: logger,
	}
}

// StripeWebhook receives and dispatches Stripe webhook events. Stripe
// delivers at least once and retries anything but a 2xx, so every event with
// a valid signature is acknowledged, including ones we fail to process
// internally. A retry storm minting duplicate orders is worse than a logged,
// manually recoverable lost order.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	event, err := wc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		wc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	wc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	switch event.Type {
	case "checkout.session.completed":
		wc.handleCheckoutCompleted(c.Request.Context(), event)
	case "payment_intent.succeeded":
		wc.Logger.Info("Payment intent succeeded", zap.String("event_id", event.ID))
	case "payment_intent.payment_failed":
		wc.handlePaymentFailed(event)
	default:
		wc.Logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (wc *WebhookController) handleCheckoutCompleted(ctx context.Context, event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		wc.Logger.Error("Failed to unmarshal checkout session", zap.Error(err))
		return
	}

	order, err := wc.Orders.MaterializeFromSession(ctx, &sess)
	if err != nil {
		wc.Logger.Error("Failed to materialize order from checkout session",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		return
	}

	wc.Logger.Info("Order created for session",
		zap.String("session_id", sess.ID),
		zap.String("order_number", order.OrderNumber),
	)
}

func (wc *WebhookController) handlePaymentFailed(event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		wc.Logger.Error("Failed to unmarshal payment intent", zap.Error(err))
		return
	}

	fields := []zap.Field{zap.String("payment_intent_id", pi.ID)}
	if pi.LastPaymentError != nil {
		fields = append(fields, zap.String("reason", pi.LastPaymentError.Msg))
	}
	wc.Logger.Error("Payment failed", fields...)
}
