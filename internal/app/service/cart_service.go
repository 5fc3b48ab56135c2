package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CartItemView is one priced cart line
type CartItemView struct {
	ProductID string        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	Product   model.Product `json:"product"`
	ItemTotal float64       `json:"item_total"`
}

// CartView is the cart as returned by every cart endpoint
type CartView struct {
	ID        string         `json:"id"`
	Items     []CartItemView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"item_count"`
}

type CartService interface {
	CreateCart() (*CartView, error)
	GetCart(cartID string) (*CartView, error)
	AddItem(cartID, productID string, quantity int) (*CartView, error)
	SetQuantity(cartID, productID string, quantity int) (*CartView, error)
	RemoveItem(cartID, productID string) (*CartView, error)
	ClearCart(cartID string) error
	PurgeAbandoned(retention time.Duration) (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) CreateCart() (*CartView, error) {
	cart := &model.Cart{ID: uuid.NewString()}
	if err := s.cartRepo.Create(cart); err != nil {
		logger.Error("Failed to create cart", err)
		return nil, err
	}

	logger.Info("Cart created", map[string]interface{}{
		"cart_id": cart.ID,
	})
	return &CartView{ID: cart.ID, Items: []CartItemView{}}, nil
}

func (s *cartService) GetCart(cartID string) (*CartView, error) {
	cart, err := s.findCart(cartID)
	if err != nil {
		return nil, err
	}
	return s.view(cart)
}

// AddItem increments the line for productID, appending it when absent
func (s *cartService) AddItem(cartID, productID string, quantity int) (*CartView, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.findCart(cartID); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.cartRepo.AddQuantity(cartID, productID, quantity); err != nil {
		logger.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}
	return s.GetCart(cartID)
}

// SetQuantity sets an existing line's quantity. Zero or less removes the
// line; setting a product that is not in the cart changes nothing.
func (s *cartService) SetQuantity(cartID, productID string, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return s.RemoveItem(cartID, productID)
	}

	logger.Info("Updating cart item quantity", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if _, err := s.findCart(cartID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SetQuantity(cartID, productID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(cartID)
}

func (s *cartService) RemoveItem(cartID, productID string) (*CartView, error) {
	logger.Info("Removing item from cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	if _, err := s.findCart(cartID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteLine(cartID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(cartID)
}

func (s *cartService) ClearCart(cartID string) error {
	if _, err := s.findCart(cartID); err != nil {
		return err
	}
	if err := s.cartRepo.DeleteLines(cartID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

// PurgeAbandoned deletes carts untouched for longer than retention
func (s *cartService) PurgeAbandoned(retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	deleted, err := s.cartRepo.DeleteStale(time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}

	logger.Info("Abandoned carts purged", map[string]interface{}{
		"deleted":   deleted,
		"retention": retention.String(),
	})
	return deleted, nil
}

func (s *cartService) findCart(cartID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart not found", map[string]interface{}{
				"cart_id": cartID,
			})
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

// view prices the cart. Lines whose product was removed from the catalog
// are left out.
func (s *cartService) view(cart *model.Cart) (*CartView, error) {
	ids := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	view := &CartView{ID: cart.ID, Items: make([]CartItemView, 0, len(cart.Lines))}
	total := decimal.Zero
	for _, line := range cart.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			logger.Debug("Skipping cart line for unknown product", map[string]interface{}{
				"cart_id":    cart.ID,
				"product_id": line.ProductID,
			})
			continue
		}

		itemTotal := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		total = total.Add(itemTotal)
		view.Items = append(view.Items, CartItemView{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Product:   product,
			ItemTotal: itemTotal.InexactFloat64(),
		})
		view.ItemCount += line.Quantity
	}
	view.Total = total.Round(2).InexactFloat64()
	return view, nil
}
