package service

import (
	"testing"
	"time"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB) {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	return NewCartService(cartRepo, productRepo), testDB
}

func TestCartService_CreateCart(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)

	cart, err := cartService.CreateCart()
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
	assert.Zero(t, cart.ItemCount)

	other, err := cartService.CreateCart()
	require.NoError(t, err)
	assert.NotEqual(t, cart.ID, other.ID)
}

func TestCartService_GetCart_NotFound(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)

	_, err := cartService.GetCart("missing")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_AddItem(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	cart, err := cartService.CreateCart()
	require.NoError(t, err)

	view, err := cartService.AddItem(cart.ID, "honingbalsem", 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "honingbalsem", view.Items[0].ProductID)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.Equal(t, 27.95, view.Items[0].ItemTotal)
	assert.Equal(t, "Honingbalsem", view.Items[0].Product.Name)
	assert.Equal(t, 27.95, view.Total)
	assert.Equal(t, 1, view.ItemCount)

	// repeat adds increment the existing line
	view, err = cartService.AddItem(cart.ID, "honingbalsem", 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 83.85, view.Total)
}

func TestCartService_TotalsAreRounded(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	cart, _ := cartService.CreateCart()

	_, err := cartService.AddItem(cart.ID, "puur-twellow-balsem", 3)
	require.NoError(t, err)
	view, err := cartService.AddItem(cart.ID, "castorbalsem", 1)
	require.NoError(t, err)

	// 3 x 24.95 + 22.95
	assert.Equal(t, 74.85, view.Items[0].ItemTotal)
	assert.Equal(t, 97.80, view.Total)
	assert.Equal(t, 4, view.ItemCount)
	assert.Equal(t, "puur-twellow-balsem", view.Items[0].ProductID)
	assert.Equal(t, "castorbalsem", view.Items[1].ProductID)
}

func TestCartService_AddItem_Errors(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	cart, _ := cartService.CreateCart()

	_, err := cartService.AddItem(cart.ID, "zeep", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = cartService.AddItem("missing", "honingbalsem", 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = cartService.AddItem(cart.ID, "honingbalsem", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_SetQuantity(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	cart, _ := cartService.CreateCart()
	_, err := cartService.AddItem(cart.ID, "honingbalsem", 1)
	require.NoError(t, err)

	view, err := cartService.SetQuantity(cart.ID, "honingbalsem", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.ItemCount)

	// absent line is not created
	view, err = cartService.SetQuantity(cart.ID, "castorbalsem", 2)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = cartService.SetQuantity(cart.ID, "honingbalsem", 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	_, err = cartService.SetQuantity("missing", "honingbalsem", 1)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	cart, _ := cartService.CreateCart()
	before, err := cartService.AddItem(cart.ID, "castorbalsem", 1)
	require.NoError(t, err)

	after, err := cartService.RemoveItem(cart.ID, "honingbalsem")
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
	assert.Len(t, after.Items, 1)

	view, err := cartService.RemoveItem(cart.ID, "castorbalsem")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = cartService.RemoveItem(cart.ID, "castorbalsem")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_SkipsRemovedProducts(t *testing.T) {
	cartService, testDB := setupCartServiceTest(t)
	cart, _ := cartService.CreateCart()
	_, err := cartService.AddItem(cart.ID, "castorbalsem", 1)
	require.NoError(t, err)
	_, err = cartService.AddItem(cart.ID, "honingbalsem", 1)
	require.NoError(t, err)

	require.NoError(t, testDB.Delete(&model.Product{}, "id = ?", "castorbalsem").Error)

	view, err := cartService.GetCart(cart.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "honingbalsem", view.Items[0].ProductID)
	assert.Equal(t, 27.95, view.Total)
	assert.Equal(t, 1, view.ItemCount)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	cart, _ := cartService.CreateCart()
	_, err := cartService.AddItem(cart.ID, "castorbalsem", 2)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(cart.ID))

	view, err := cartService.GetCart(cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, view.ID)
	assert.Empty(t, view.Items)

	assert.ErrorIs(t, cartService.ClearCart("missing"), ErrCartNotFound)
}

func TestCartService_PurgeAbandoned(t *testing.T) {
	cartService, testDB := setupCartServiceTest(t)
	stale, _ := cartService.CreateCart()
	fresh, _ := cartService.CreateCart()

	old := time.Now().Add(-45 * 24 * time.Hour)
	require.NoError(t, testDB.Model(&model.Cart{}).Where("id = ?", stale.ID).UpdateColumn("updated_at", old).Error)

	deleted, err := cartService.PurgeAbandoned(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = cartService.GetCart(stale.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)
	_, err = cartService.GetCart(fresh.ID)
	assert.NoError(t, err)

	deleted, err = cartService.PurgeAbandoned(0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
