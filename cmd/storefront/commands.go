package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mallow/storefront/config"
	"github.com/mallow/storefront/pkg/storefront"
	"github.com/shopspring/decimal"
)

var (
	errUsage             = errors.New("usage")
	errProductNotFound   = errors.New("product not found")
	errCheckoutFailed    = errors.New("checkout failed")
	errSessionExpired    = errors.New("payment session expired")
	errPaymentUnverified = errors.New("payment could not be verified")
)

var (
	freeShippingFrom = decimal.NewFromInt(50)
	shippingFee      = decimal.RequireFromString("4.95")
)

type app struct {
	out     io.Writer
	client  *storefront.Client
	catalog *storefront.Catalog
	state   *storefront.CartState
	nav     storefront.Navigator
	poller  *storefront.PaymentPoller
	origin  string
}

func newApp(client *storefront.Client, store storefront.IdentityStore, cfg config.StorefrontConfig, out io.Writer) *app {
	state := storefront.NewCartState(client, store)
	a := &app{
		out:     out,
		client:  client,
		catalog: storefront.NewCatalog(client, cfg.CatalogTimeout),
		state:   state,
		poller: storefront.NewPaymentPoller(client, state,
			storefront.WithPollInterval(cfg.PollInterval),
			storefront.WithPollRetries(cfg.PollRetries),
		),
		origin: cfg.OriginURL,
	}
	a.nav = storefront.NavigatorFunc(func(url string) error {
		_, err := fmt.Fprintf(a.out, "Ga verder naar de betaalpagina: %s\n", url)
		return err
	})
	return a
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	a.state.Activate(ctx)

	switch args[0] {
	case "products":
		return a.products(ctx)
	case "product":
		if len(args) != 2 {
			return errUsage
		}
		return a.product(ctx, args[1])
	case "cart":
		a.printCart(a.state.Snapshot().Cart)
		return nil
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		qty := 1
		if len(args) == 3 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return errUsage
			}
			qty = n
		}
		return a.mutate("add to cart", "Kon product niet toevoegen", "Toegevoegd aan winkelwagen", func() (bool, error) {
			return a.state.AddToCart(ctx, args[1], qty)
		})
	case "set":
		if len(args) != 3 {
			return errUsage
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return errUsage
		}
		return a.mutate("update quantity", "Kon hoeveelheid niet aanpassen", "Winkelwagen bijgewerkt", func() (bool, error) {
			return a.state.UpdateQuantity(ctx, args[1], qty)
		})
	case "remove":
		if len(args) != 2 {
			return errUsage
		}
		return a.mutate("remove from cart", "Kon product niet verwijderen", "Verwijderd uit winkelwagen", func() (bool, error) {
			return a.state.RemoveFromCart(ctx, args[1])
		})
	case "checkout":
		origin := a.origin
		if len(args) > 1 {
			origin = args[1]
		}
		return a.checkout(ctx, origin)
	case "status":
		if len(args) != 2 {
			return errUsage
		}
		return a.status(ctx, args[1])
	case "subscribe":
		if len(args) != 2 {
			return errUsage
		}
		message, err := a.client.Subscribe(ctx, args[1])
		if err != nil {
			fmt.Fprintf(a.out, "Er ging iets mis: %s\n", userMessage(err))
			return fmt.Errorf("subscribe: %w", err)
		}
		fmt.Fprintln(a.out, message)
		return nil
	case "contact":
		if len(args) != 5 {
			return errUsage
		}
		err := a.client.SubmitContact(ctx, storefront.ContactMessage{
			Name:    args[1],
			Email:   args[2],
			Subject: args[3],
			Message: args[4],
		})
		if err != nil {
			fmt.Fprintf(a.out, "Er ging iets mis: %s\n", userMessage(err))
			return fmt.Errorf("send contact message: %w", err)
		}
		fmt.Fprintln(a.out, "Bericht verzonden!")
		return nil
	default:
		return errUsage
	}
}

func (a *app) products(ctx context.Context) error {
	products, fallback := a.catalog.ListProducts(ctx)
	if fallback {
		fmt.Fprintln(a.out, "(offline catalogus)")
	}
	for _, p := range products {
		stock := ""
		if !p.InStock {
			stock = "  uitverkocht"
		}
		fmt.Fprintf(a.out, "%-22s %-24s %s%s\n", p.ID, p.Name, euro(p.Price), stock)
	}
	return nil
}

func (a *app) product(ctx context.Context, id string) error {
	p, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			fmt.Fprintln(a.out, "Product niet gevonden")
			return errProductNotFound
		}
		fmt.Fprintln(a.out, "Er ging iets mis")
		return fmt.Errorf("get product %s: %w", id, err)
	}

	fmt.Fprintf(a.out, "%s - %s\n%s\n\n%s\n", p.Name, euro(p.Price), p.Subtitle, p.Description)
	if len(p.Ingredients) > 0 {
		fmt.Fprintf(a.out, "\nIngredienten: %s\n", strings.Join(p.Ingredients, ", "))
	}
	if p.Usage != "" {
		fmt.Fprintf(a.out, "Gebruik: %s\n", p.Usage)
	}
	return nil
}

// mutate runs one cart change and reports it the way a toast would
func (a *app) mutate(op, failure, success string, call func() (bool, error)) error {
	ok, err := call()
	if !ok {
		if err == nil {
			err = errors.New("unknown failure")
		}
		fmt.Fprintf(a.out, "%s: %s\n", failure, userMessage(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	fmt.Fprintln(a.out, success)
	a.printCart(a.state.Snapshot().Cart)
	return nil
}

func (a *app) checkout(ctx context.Context, origin string) error {
	initiator := storefront.NewCheckoutInitiator(a.client, a.nav)
	if _, err := initiator.Checkout(ctx, a.state.ID(), origin); err != nil {
		fmt.Fprintf(a.out, "Afrekenen mislukt: %s\n", userMessage(err))
		return fmt.Errorf("%w: %w", errCheckoutFailed, err)
	}
	return nil
}

// userMessage is the server's message for a failed call, if it sent one
func userMessage(err error) string {
	var se *storefront.ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return "onbekende fout"
}

func (a *app) status(ctx context.Context, sessionID string) error {
	fmt.Fprintln(a.out, "Betaling wordt gecontroleerd...")

	switch a.poller.Poll(ctx, sessionID) {
	case storefront.OutcomeSuccess:
		fmt.Fprintln(a.out, "Bedankt voor je bestelling!")
		return nil
	case storefront.OutcomeExpired:
		fmt.Fprintln(a.out, "Sessie verlopen: je betaalsessie is verlopen. Probeer het opnieuw.")
		return errSessionExpired
	case storefront.OutcomePending:
		fmt.Fprintln(a.out, "Je betaling wordt nog verwerkt. Controleer je e-mail voor bevestiging.")
		return nil
	default:
		fmt.Fprintln(a.out, "Er ging iets mis: we konden je betaling niet verifieren")
		return errPaymentUnverified
	}
}

func (a *app) printCart(cart storefront.Cart) {
	if cart.IsEmpty() {
		fmt.Fprintln(a.out, "Je winkelwagen is leeg")
		return
	}

	for _, item := range cart.Items {
		fmt.Fprintf(a.out, "%3d x %-24s %s\n", item.Quantity, item.Product.Name, euro(item.ItemTotal))
	}
	subtotal := decimal.NewFromFloat(cart.Total)
	shipping := shippingFor(subtotal)
	fmt.Fprintf(a.out, "Subtotaal      %s\n", euro(cart.Total))
	if shipping.IsZero() {
		fmt.Fprintln(a.out, "Verzendkosten  Gratis")
	} else {
		fmt.Fprintf(a.out, "Verzendkosten  %s\n", euro(shipping.InexactFloat64()))
	}
	fmt.Fprintf(a.out, "Totaal         %s\n", euro(subtotal.Add(shipping).InexactFloat64()))
}

// shippingFor is the display-only shipping fee shown under the cart
func shippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingFrom) {
		return decimal.Zero
	}
	return shippingFee
}

// euro formats an amount the Dutch way, e.g. €27,95
func euro(amount float64) string {
	return "€" + strings.Replace(decimal.NewFromFloat(amount).StringFixed(2), ".", ",", 1)
}
