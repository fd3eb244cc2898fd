package controllers_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/controllers"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

// ---- mock materializer ----

type mockMaterializer struct {
	calls         int
	lastSessionID string
	err           error
}

func (m *mockMaterializer) MaterializeFromSession(_ context.Context, sess *stripe.CheckoutSession) (*models.Order, error) {
	m.calls++
	m.lastSessionID = sess.ID
	if m.err != nil {
		return nil, m.err
	}
	return &models.Order{OrderNumber: "DRH-AB12CD34", CheckoutSessionID: sess.ID}, nil
}

func setupRouter(materializer *mockMaterializer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	stripeSvc := services.NewStripeService("sk_test_key", testWebhookSecret)
	wc := controllers.NewWebhookController(stripeSvc, materializer, zap.NewNop())

	r := gin.New()
	r.POST("/api/webhooks/stripe", wc.StripeWebhook)
	return r
}

func eventPayload(t *testing.T, eventType string, object map[string]interface{}) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test_1",
		"api_version": stripe.APIVersion,
		"type":        eventType,
		"data":        map[string]interface{}{"object": object},
	})
	assert.NoError(t, err)
	return payload
}

func signedRequest(payload []byte, secret string) *http.Request {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig)))
	return req
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	materializer := &mockMaterializer{}
	r := setupRouter(materializer)

	payload := eventPayload(t, "checkout.session.completed", map[string]interface{}{"id": "cs_test_1"})
	req := signedRequest(payload, "whsec_wrong_secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, materializer.calls)
}

func TestStripeWebhook_MissingSignature(t *testing.T) {
	materializer := &mockMaterializer{}
	r := setupRouter(materializer)

	payload := eventPayload(t, "checkout.session.completed", map[string]interface{}{"id": "cs_test_1"})
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, materializer.calls)
}

func TestStripeWebhook_CheckoutCompleted(t *testing.T) {
	materializer := &mockMaterializer{}
	r := setupRouter(materializer)

	payload := eventPayload(t, "checkout.session.completed", map[string]interface{}{
		"id":           "cs_test_2",
		"amount_total": 6000,
		"metadata":     map[string]string{"orderNumber": "DRH-AB12CD34"},
	})
	req := signedRequest(payload, testWebhookSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
	assert.Equal(t, 1, materializer.calls)
	assert.Equal(t, "cs_test_2", materializer.lastSessionID)
}

func TestStripeWebhook_MaterializationErrorStillAcknowledged(t *testing.T) {
	materializer := &mockMaterializer{err: services.ErrMalformedMetadata}
	r := setupRouter(materializer)

	payload := eventPayload(t, "checkout.session.completed", map[string]interface{}{"id": "cs_test_3"})
	req := signedRequest(payload, testWebhookSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Valid signature: acknowledged so the processor stops retrying.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, materializer.calls)
}

func TestStripeWebhook_PaymentIntentEventsAreObservedOnly(t *testing.T) {
	materializer := &mockMaterializer{}
	r := setupRouter(materializer)

	for _, eventType := range []string{"payment_intent.succeeded", "payment_intent.payment_failed", "charge.refunded"} {
		payload := eventPayload(t, eventType, map[string]interface{}{"id": "pi_test_1"})
		req := signedRequest(payload, testWebhookSecret)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, eventType)
		assert.JSONEq(t, `{"received": true}`, w.Body.String())
	}
	assert.Equal(t, 0, materializer.calls)
}
