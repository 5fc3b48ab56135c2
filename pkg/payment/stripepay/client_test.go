package stripepay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

const testWebhookSecret = "whsec_test"

// fakeStripe answers the two checkout session endpoints
type fakeStripe struct {
	mu       sync.Mutex
	form     map[string]string
	sessions map[string]map[string]interface{}
}

func (f *fakeStripe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	if r.Header.Get("Authorization") != "Bearer sk_test_123" {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
		r.ParseForm()
		f.form = make(map[string]string)
		for k, v := range r.PostForm {
			f.form[k] = v[0]
		}
		session := map[string]interface{}{
			"id":             "cs_test_1",
			"object":         "checkout.session",
			"url":            "https://checkout.stripe.com/c/pay/cs_test_1",
			"status":         "open",
			"payment_status": "unpaid",
			"amount_total":   5590,
			"currency":       "eur",
			"metadata":       map[string]string{"cart_id": f.form["metadata[cart_id]"]},
		}
		f.sessions["cs_test_1"] = session
		json.NewEncoder(w).Encode(session)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/checkout/sessions/"):
		id := strings.TrimPrefix(r.URL.Path, "/v1/checkout/sessions/")
		session, ok := f.sessions[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such checkout.session"}}`)
			return
		}
		json.NewEncoder(w).Encode(session)

	default:
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"type":"api_error","message":"unexpected"}}`)
	}
}

func setupStripeTest(t *testing.T, apiKey string) (*Client, *fakeStripe) {
	fake := &fakeStripe{sessions: make(map[string]map[string]interface{})}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		APIKey:        apiKey,
		WebhookSecret: testWebhookSecret,
		Currency:      "EUR",
		BaseURL:       srv.URL,
	})
	require.NoError(t, err)
	return client, fake
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{Currency: "eur"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewClient(Config{APIKey: "sk_test_123"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClient_CreateSession(t *testing.T) {
	client, fake := setupStripeTest(t, "sk_test_123")

	session, err := client.CreateSession(context.Background(), SessionRequest{
		LineItems: []LineItem{
			{Name: "Honingbalsem", UnitAmount: 2795, Quantity: 2},
		},
		SuccessURL: "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "http://localhost:3000/cart",
		Metadata:   map[string]string{"cart_id": "c1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)
	assert.Equal(t, int64(5590), session.AmountTotal)
	assert.Equal(t, "c1", session.Metadata["cart_id"])

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "payment", fake.form["mode"])
	assert.Equal(t, "eur", fake.form["line_items[0][price_data][currency]"])
	assert.Equal(t, "2795", fake.form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "2", fake.form["line_items[0][quantity]"])
	assert.Equal(t, "Honingbalsem", fake.form["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "http://localhost:3000/cart", fake.form["cancel_url"])
}

func TestClient_CreateSession_Invalid(t *testing.T) {
	client, _ := setupStripeTest(t, "sk_test_123")

	_, err := client.CreateSession(context.Background(), SessionRequest{SuccessURL: "a", CancelURL: "b"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClient_CreateSession_Unauthorized(t *testing.T) {
	client, _ := setupStripeTest(t, "sk_test_bad")

	_, err := client.CreateSession(context.Background(), SessionRequest{
		LineItems:  []LineItem{{Name: "Castorbalsem", UnitAmount: 2295, Quantity: 1}},
		SuccessURL: "http://localhost:3000/success",
		CancelURL:  "http://localhost:3000/cart",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_GetSession(t *testing.T) {
	client, fake := setupStripeTest(t, "sk_test_123")
	fake.mu.Lock()
	fake.sessions["cs_paid"] = map[string]interface{}{
		"id":             "cs_paid",
		"object":         "checkout.session",
		"status":         "complete",
		"payment_status": "paid",
		"amount_total":   2795,
		"currency":       "eur",
	}
	fake.mu.Unlock()

	session, err := client.GetSession(context.Background(), "cs_paid")
	require.NoError(t, err)
	assert.Equal(t, "complete", session.Status)
	assert.Equal(t, "paid", session.PaymentStatus)
	assert.Equal(t, int64(2795), session.AmountTotal)

	_, err = client.GetSession(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = client.GetSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func webhookPayload(t *testing.T, eventType string) []byte {
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_1",
		"object":      "event",
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":             "cs_test_1",
				"object":         "checkout.session",
				"status":         "complete",
				"payment_status": "paid",
				"amount_total":   2795,
				"currency":       "eur",
				"metadata":       map[string]string{"cart_id": "c1"},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func TestClient_ParseWebhook(t *testing.T) {
	client, _ := setupStripeTest(t, "sk_test_123")
	payload := webhookPayload(t, EventCheckoutCompleted)

	event, err := client.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	require.NotNil(t, event.Session)
	assert.Equal(t, "cs_test_1", event.Session.ID)
	assert.Equal(t, "paid", event.Session.PaymentStatus)
	assert.Equal(t, "c1", event.Session.Metadata["cart_id"])
}

func TestClient_ParseWebhook_BadSignature(t *testing.T) {
	client, _ := setupStripeTest(t, "sk_test_123")
	payload := webhookPayload(t, EventCheckoutCompleted)

	_, err := client.ParseWebhook(payload, signPayload(payload, "whsec_other", time.Now()))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = client.ParseWebhook(payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
