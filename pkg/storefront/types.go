package storefront

// CartIdentifier is the opaque cart id handed out by the cart service
type CartIdentifier string

// Product is the catalog snapshot the storefront displays
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Benefits    []string `json:"benefits"`
	Usage       string   `json:"usage"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	InStock     bool     `json:"in_stock"`
}

// CartItem is one cart line as computed by the server
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
	ItemTotal float64 `json:"item_total"`
}

// Cart is the authoritative server view. The client never derives it.
type Cart struct {
	ID        string     `json:"id,omitempty"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// EmptyCart returns the empty default cart
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone copies the item slice so callers cannot alias shared state
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

type createCartResponse struct {
	ID string `json:"id"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	CartID    string `json:"cart_id"`
	OriginURL string `json:"origin_url"`
}

// CheckoutSession is the payment provider redirect returned by POST /checkout
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PaymentStatus is the provider state returned by GET /checkout/status/{id}
type PaymentStatus struct {
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	AmountTotal   float64 `json:"amount_total"`
	Currency      string  `json:"currency"`
}

const (
	PaymentStatusPaid    = "paid"
	SessionStatusExpired = "expired"
)

// ContactMessage is the payload of the contact form
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Message string `json:"message"`
}

// errorResponse covers both the backend's {"detail"} and {"error","message"} bodies
type errorResponse struct {
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
