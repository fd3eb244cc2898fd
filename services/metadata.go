package services

import (
	"encoding/json"
	"fmt"
	"strconv"

	"storefront-service/models"
)

// Checkout session metadata keys. This map is the single source of truth the
// webhook consumes to reconstruct an order: no order row exists until the
// processor confirms payment.
const (
	metaOrderNumber     = "orderNumber"
	metaCustomerName    = "customerName"
	metaCustomerPhone   = "customerPhone"
	metaDeliveryAddress = "deliveryAddress"
	metaItems           = "items"
	metaIsDeposit       = "isDeposit"
	metaTotalAmount     = "totalAmount"
	metaDepositAmount   = "depositAmount"
)

// SessionMetadata is everything the reconciler needs to materialize an order
// from a completed checkout session.
type SessionMetadata struct {
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	Delivery      models.DeliveryDetails
	// RawDelivery keeps the serialized form for storage on the order row.
	RawDelivery   string
	Items         []models.CartItem
	IsDeposit     bool
	Subtotal      float64
	DepositAmount float64
}

// EncodeSessionMetadata serializes the metadata into the string map the
// payment processor attaches to its session.
func EncodeSessionMetadata(m SessionMetadata) (map[string]string, error) {
	deliveryJSON, err := json.Marshal(m.Delivery)
	if err != nil {
		return nil, fmt.Errorf("failed to encode delivery details: %w", err)
	}
	itemsJSON, err := json.Marshal(m.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart items: %w", err)
	}

	return map[string]string{
		metaOrderNumber:     m.OrderNumber,
		metaCustomerName:    m.CustomerName,
		metaCustomerPhone:   m.CustomerPhone,
		metaDeliveryAddress: string(deliveryJSON),
		metaItems:           string(itemsJSON),
		metaIsDeposit:       strconv.FormatBool(m.IsDeposit),
		metaTotalAmount:     strconv.FormatFloat(m.Subtotal, 'f', -1, 64),
		metaDepositAmount:   strconv.FormatFloat(m.DepositAmount, 'f', -1, 64),
	}, nil
}

// DecodeSessionMetadata validates and parses the metadata map from a
// completed session. A missing order number or unparseable payload yields
// ErrMalformedMetadata: the shape is validated, never trusted.
func DecodeSessionMetadata(raw map[string]string) (*SessionMetadata, error) {
	if raw == nil || raw[metaOrderNumber] == "" {
		return nil, ErrMalformedMetadata
	}

	m := &SessionMetadata{
		OrderNumber:   raw[metaOrderNumber],
		CustomerName:  raw[metaCustomerName],
		CustomerPhone: raw[metaCustomerPhone],
		RawDelivery:   raw[metaDeliveryAddress],
		IsDeposit:     raw[metaIsDeposit] == "true",
	}

	if m.RawDelivery != "" {
		if err := json.Unmarshal([]byte(m.RawDelivery), &m.Delivery); err != nil {
			return nil, fmt.Errorf("%w: bad delivery payload: %v", ErrMalformedMetadata, err)
		}
	}
	if itemsJSON := raw[metaItems]; itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &m.Items); err != nil {
			return nil, fmt.Errorf("%w: bad items payload: %v", ErrMalformedMetadata, err)
		}
	}

	if v := raw[metaTotalAmount]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad total amount: %v", ErrMalformedMetadata, err)
		}
		m.Subtotal = f
	}
	if v := raw[metaDepositAmount]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad deposit amount: %v", ErrMalformedMetadata, err)
		}
		m.DepositAmount = f
	}

	return m, nil
}
