package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/sender"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Attempts to resolve an order_number collision by regenerating the number.
const materializeAttempts = 3

const emailTimeout = 10 * time.Second

// OrderService materializes orders from confirmed-payment events and serves
// order lookups. An order only ever comes into existence here: payment
// confirmed, never merely intended.
type OrderService struct {
	orderRepo repository.OrderRepository
	mailer    sender.EmailSender // nil when email is not configured
	logger    *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, mailer sender.EmailSender, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// MaterializeFromSession converts a completed checkout session into a
// persisted order with item snapshots. Safe to invoke more than once for the
// same session: a prior order for the session ID is returned as-is, and the
// unique index on checkout_session_id catches concurrent deliveries.
func (s *OrderService) MaterializeFromSession(ctx context.Context, sess *stripe.CheckoutSession) (*models.Order, error) {
	meta, err := DecodeSessionMetadata(sess.Metadata)
	if err != nil {
		return nil, err
	}

	if existing, err := s.orderRepo.FindByCheckoutSessionID(ctx, sess.ID); err == nil {
		s.logger.Info("Skipping duplicate checkout webhook",
			zap.String("session_id", sess.ID),
			zap.String("order_number", existing.OrderNumber),
		)
		return existing, nil
	}

	order := s.buildOrder(sess, meta)

	var createErr error
	for attempt := 0; attempt < materializeAttempts; attempt++ {
		createErr = s.orderRepo.Create(ctx, order)
		if createErr == nil {
			break
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, createErr
		}

		// A concurrent delivery may have won the insert for this session.
		if existing, err := s.orderRepo.FindByCheckoutSessionID(ctx, sess.ID); err == nil {
			s.logger.Info("Order already materialized by concurrent delivery",
				zap.String("session_id", sess.ID),
			)
			return existing, nil
		}

		// Otherwise the order number collided; regenerate and retry.
		s.logger.Warn("Order number collision, regenerating",
			zap.String("order_number", order.OrderNumber),
			zap.Int("attempt", attempt+1),
		)
		order.OrderNumber = NewOrderNumber()
	}
	if createErr != nil {
		return nil, ErrOrderNumberConflict
	}

	s.logger.Info("Order materialized",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status),
		zap.Float64("amount_paid", order.AmountPaid),
	)

	s.sendConfirmation(order, meta)

	return order, nil
}

// buildOrder assembles the order row and its item snapshots from the session
// and its decoded metadata. The charged amount comes from the processor's
// AmountTotal; the metadata only supplies the intended subtotal and deposit.
func (s *OrderService) buildOrder(sess *stripe.CheckoutSession, meta *SessionMetadata) *models.Order {
	status := models.StatusConfirmed
	if meta.IsDeposit {
		status = models.StatusDepositPaid
	}

	email := sess.CustomerEmail
	name := meta.CustomerName
	phone := meta.CustomerPhone
	if sess.CustomerDetails != nil {
		if email == "" {
			email = sess.CustomerDetails.Email
		}
		if name == "" {
			name = sess.CustomerDetails.Name
		}
		if phone == "" {
			phone = sess.CustomerDetails.Phone
		}
	}

	var paymentIntentID *string
	if sess.PaymentIntent != nil {
		paymentIntentID = &sess.PaymentIntent.ID
	}

	var depositAmount *float64
	if meta.DepositAmount > 0 {
		depositAmount = &meta.DepositAmount
	}

	order := &models.Order{
		ID:                uuid.New(),
		OrderNumber:       meta.OrderNumber,
		GuestEmail:        strPtr(email),
		GuestName:         strPtr(name),
		GuestPhone:        strPtr(phone),
		Status:            status,
		Subtotal:          meta.Subtotal,
		DepositAmount:     depositAmount,
		DepositPaid:       meta.IsDeposit,
		TotalAmount:       meta.Subtotal,
		AmountPaid:        float64(sess.AmountTotal) / 100,
		PaymentMethod:     "stripe",
		CheckoutSessionID: sess.ID,
		PaymentIntentID:   paymentIntentID,
		DeliveryBorough:   strPtr(meta.Delivery.Borough),
		DeliveryAddress:   strPtr(meta.RawDelivery),
		DeliveryDate:      strPtr(meta.Delivery.Date),
		DeliveryTime:      strPtr(meta.Delivery.Time),
	}
	if meta.Delivery.Instructions != "" {
		order.SpecialInstructions = &meta.Delivery.Instructions
	}

	for _, item := range meta.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ProductID:       item.ID,
			ProductName:     item.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Price,
		})
	}

	return order
}

// sendConfirmation is best-effort: a failed send is logged and never unwinds
// the order.
func (s *OrderService) sendConfirmation(order *models.Order, meta *SessionMetadata) {
	if s.mailer == nil {
		return
	}
	if order.GuestEmail == nil || *order.GuestEmail == "" {
		s.logger.Info("No customer email on order, skipping confirmation",
			zap.String("order_number", order.OrderNumber),
		)
		return
	}

	name := meta.CustomerName
	if name == "" {
		name = "Valued Customer"
	}
	subject, body := buildConfirmationEmail(order, name)

	ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
	defer cancel()

	if _, err := s.mailer.SendEmail(ctx, *order.GuestEmail, subject, body); err != nil {
		s.logger.Error("Failed to send confirmation email",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Confirmation email sent",
		zap.String("order_number", order.OrderNumber),
	)
}

// OrderSummary is the lookup response shape.
type OrderSummary struct {
	ID                  uuid.UUID              `json:"id"`
	OrderNumber         string                 `json:"order_number"`
	Status              string                 `json:"status"`
	Items               []OrderItemSummary     `json:"items"`
	Subtotal            float64                `json:"subtotal"`
	TotalAmount         float64                `json:"total_amount"`
	DepositAmount       *float64               `json:"deposit_amount,omitempty"`
	DepositPaid         bool                   `json:"deposit_paid"`
	AmountPaid          float64                `json:"amount_paid"`
	Delivery            models.DeliveryDetails `json:"delivery"`
	SpecialInstructions string                 `json:"special_instructions,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
}

type OrderItemSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// GetOrder looks up an order by order number or internal ID.
func (s *OrderService) GetOrder(ctx context.Context, ref string) (*OrderSummary, *ServiceError) {
	order, err := s.orderRepo.FindByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("ref", ref), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	summary := &OrderSummary{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		Subtotal:      order.Subtotal,
		TotalAmount:   order.TotalAmount,
		DepositAmount: order.DepositAmount,
		DepositPaid:   order.DepositPaid,
		AmountPaid:    order.AmountPaid,
		CreatedAt:     order.CreatedAt,
	}

	for _, item := range order.OrderItems {
		summary.Items = append(summary.Items, OrderItemSummary{
			ID:       item.ProductID,
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.PriceAtPurchase,
		})
	}

	if order.DeliveryAddress != nil {
		if err := json.Unmarshal([]byte(*order.DeliveryAddress), &summary.Delivery); err != nil {
			summary.Delivery = models.DeliveryDetails{Address: *order.DeliveryAddress}
		}
	}
	if order.DeliveryBorough != nil {
		summary.Delivery.Borough = *order.DeliveryBorough
	}
	if order.DeliveryDate != nil {
		summary.Delivery.Date = *order.DeliveryDate
	}
	if order.DeliveryTime != nil {
		summary.Delivery.Time = *order.DeliveryTime
	}
	if order.SpecialInstructions != nil {
		summary.SpecialInstructions = *order.SpecialInstructions
	}

	return summary, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
