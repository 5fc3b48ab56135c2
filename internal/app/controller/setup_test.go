package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/internal/app/service"
	"github.com/mallow/storefront/internal/db"
	"github.com/mallow/storefront/pkg/payment/stripepay"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubProvider returns one canned session and a canned webhook event
type stubProvider struct {
	session *stripepay.Session
	event   *stripepay.WebhookEvent
	err     error
}

func (p *stubProvider) CreateSession(ctx context.Context, req stripepay.SessionRequest) (*stripepay.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func (p *stubProvider) GetSession(ctx context.Context, sessionID string) (*stripepay.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.session == nil || p.session.ID != sessionID {
		return nil, stripepay.ErrSessionNotFound
	}
	return p.session, nil
}

func (p *stubProvider) ParseWebhook(payload []byte, signature string) (*stripepay.WebhookEvent, error) {
	if signature != "t=1,v1=good" {
		return nil, stripepay.ErrInvalidSignature
	}
	return p.event, nil
}

type controllerFixture struct {
	router   *gin.Engine
	db       *gorm.DB
	carts    service.CartService
	provider *stubProvider
}

func setupControllerTest(t *testing.T) *controllerFixture {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productService := service.NewProductService(repository.NewProductRepository(testDB))
	cartService := service.NewCartService(repository.NewCartRepository(testDB), repository.NewProductRepository(testDB))
	provider := &stubProvider{session: &stripepay.Session{
		ID:            "cs_test_1",
		URL:           "https://checkout.stripe.com/c/pay/cs_test_1",
		Status:        "open",
		PaymentStatus: "unpaid",
		Currency:      "eur",
	}}
	checkoutService := service.NewCheckoutService(cartService, repository.NewPaymentTransactionRepository(testDB), provider, "eur")
	contactService := service.NewContactService(repository.NewContactRepository(testDB), repository.NewSubscriberRepository(testDB))

	products := NewProductController(productService)
	carts := NewCartController(cartService)
	checkout := NewCheckoutController(checkoutService)
	contact := NewContactController(contactService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/products", products.ListProducts)
		api.GET("/products/:id", products.GetProduct)
		api.POST("/cart", carts.CreateCart)
		api.GET("/cart/:id", carts.GetCart)
		api.POST("/cart/:id/items", carts.AddItem)
		api.PUT("/cart/:id/items/:product_id", carts.UpdateItem)
		api.DELETE("/cart/:id/items/:product_id", carts.RemoveItem)
		api.POST("/checkout", checkout.CreateSession)
		api.GET("/checkout/status/:session_id", checkout.GetStatus)
		api.POST("/webhook/stripe", checkout.Webhook)
		api.POST("/contact", contact.SubmitMessage)
		api.POST("/subscribe", contact.Subscribe)
	}

	return &controllerFixture{router: router, db: testDB, carts: cartService, provider: provider}
}

func (f *controllerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]interface{}
	decode(t, w, &body)
	d, _ := body["detail"].(string)
	return d
}

func (f *controllerFixture) newCart(t *testing.T) string {
	w := f.do(t, http.MethodPost, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart service.CartView
	decode(t, w, &cart)
	return cart.ID
}
