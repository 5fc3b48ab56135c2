package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mallow/storefront/config"
	"github.com/mallow/storefront/pkg/logger"
	"github.com/mallow/storefront/pkg/redis"
	"github.com/mallow/storefront/pkg/storefront"
)

const usage = `Usage: storefront <command> [args]

Commands:
  products                                  list the catalog
  product <id>                              show one product
  cart                                      show the cart
  add <id> [qty]                            add a product (default 1)
  set <id> <qty>                            set a quantity, 0 removes
  remove <id>                               remove a product
  checkout [origin]                         start payment
  status <session_id>                       wait for the payment result
  subscribe <email>                         join the newsletter
  contact <name> <email> <subject> <message>  send a message`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logger.Initialize(logger.Config{
		Level:  cfg.LogLevel(),
		Format: "console",
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := identityStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open cart storage:", err)
		os.Exit(1)
	}
	defer closeStore()

	client := storefront.NewClient(cfg.Storefront.APIBaseURL, &http.Client{})
	a := newApp(client, store, cfg.Storefront, os.Stdout)

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// identityStore picks where the cart identifier of this profile lives
func identityStore(cfg *config.Config) (storefront.IdentityStore, func(), error) {
	switch cfg.Storefront.IdentityBackend {
	case "redis":
		if err := redis.Init(&cfg.Redis); err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}
		return storefront.NewRedisIdentityStore(redis.GetClient(), cfg.Storefront.Profile), closeFn, nil
	case "file", "":
		dir, err := profileDir(cfg.Storefront.StateDir, cfg.Storefront.Profile)
		if err != nil {
			return nil, nil, err
		}
		return storefront.NewFileIdentityStore(dir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown identity backend %q", cfg.Storefront.IdentityBackend)
	}
}

// profileDir is the state directory of one profile. The default profile
// uses stateDir itself; others get a subdirectory that must stay inside it.
func profileDir(stateDir, profile string) (string, error) {
	if profile == "" || profile == "default" {
		return stateDir, nil
	}
	if profile == "." || profile == ".." || strings.ContainsAny(profile, `/\`) {
		return "", fmt.Errorf("invalid profile name %q", profile)
	}
	return filepath.Join(stateDir, profile), nil
}
