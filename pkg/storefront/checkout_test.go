package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	visited []string
	err     error
}

func (n *recordingNavigator) Navigate(url string) error {
	n.visited = append(n.visited, url)
	return n.err
}

func TestCheckoutInitiator_Success(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.checkoutURL = "https://checkout.stripe.com/c/pay/cs_test_1"
	client := NewClient(srv.URL+"/api", srv.Client())
	ctx := context.Background()

	id, err := client.CreateCart(ctx)
	require.NoError(t, err)
	_, err = client.AddItem(ctx, id, "honingbalsem", 1)
	require.NoError(t, err)

	nav := &recordingNavigator{}
	redirect, err := NewCheckoutInitiator(client, nav).Checkout(ctx, id, "http://localhost:3000/")

	require.NoError(t, err)
	assert.Equal(t, fb.checkoutURL, redirect)
	assert.Equal(t, []string{fb.checkoutURL}, nav.visited)
}

func TestCheckoutInitiator_EmptyCartDoesNotNavigate(t *testing.T) {
	_, srv := newFakeBackend(t)
	client := NewClient(srv.URL+"/api", srv.Client())
	ctx := context.Background()

	id, err := client.CreateCart(ctx)
	require.NoError(t, err)

	nav := &recordingNavigator{}
	_, err = NewCheckoutInitiator(client, nav).Checkout(ctx, id, "http://localhost:3000")

	assert.ErrorIs(t, err, ErrService)
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Winkelwagen is leeg", se.Message)
	assert.Empty(t, nav.visited)
}

func TestCheckoutInitiator_NoCart(t *testing.T) {
	fb, srv := newFakeBackend(t)
	nav := &recordingNavigator{}

	_, err := NewCheckoutInitiator(NewClient(srv.URL+"/api", srv.Client()), nav).Checkout(context.Background(), "", "http://localhost:3000")

	assert.ErrorIs(t, err, ErrService)
	assert.Zero(t, fb.callCount("POST checkout"))
	assert.Empty(t, nav.visited)
}

func TestCheckoutInitiator_MissingRedirect(t *testing.T) {
	_, srv := newFakeBackend(t)
	client := NewClient(srv.URL+"/api", srv.Client())
	ctx := context.Background()
	id, _ := client.CreateCart(ctx)
	_, err := client.AddItem(ctx, id, "castorbalsem", 1)
	require.NoError(t, err)

	nav := &recordingNavigator{}
	_, err = NewCheckoutInitiator(client, nav).Checkout(ctx, id, "http://localhost:3000")

	assert.ErrorIs(t, err, ErrService)
	assert.Empty(t, nav.visited)
}

func TestCheckoutInitiator_NavigationFailure(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.checkoutURL = "https://checkout.stripe.com/c/pay/cs_test_1"
	client := NewClient(srv.URL+"/api", srv.Client())
	ctx := context.Background()
	id, _ := client.CreateCart(ctx)
	_, err := client.AddItem(ctx, id, "castorbalsem", 1)
	require.NoError(t, err)

	navErr := errors.New("no browser")
	nav := NavigatorFunc(func(string) error { return navErr })
	redirect, err := NewCheckoutInitiator(client, nav).Checkout(ctx, id, "http://localhost:3000")

	assert.Equal(t, fb.checkoutURL, redirect)
	assert.ErrorIs(t, err, ErrService)
	assert.ErrorIs(t, err, navErr)
}

func TestClient_CheckoutStatus(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.statuses = []PaymentStatus{{Status: "complete", PaymentStatus: "paid", AmountTotal: 27.95, Currency: "eur"}}

	status, err := NewClient(srv.URL+"/api", srv.Client()).CheckoutStatus(context.Background(), "cs_test_1")

	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, status.PaymentStatus)
	assert.Equal(t, "eur", status.Currency)
	assert.InDelta(t, 27.95, status.AmountTotal, 0.001)
}
