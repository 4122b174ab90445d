package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heddiekitchen/storefront-client/internal/api"
	"github.com/heddiekitchen/storefront-client/internal/services"
	"github.com/heddiekitchen/storefront-client/internal/storage"
	"github.com/heddiekitchen/storefront-client/internal/store"
	"github.com/heddiekitchen/storefront-client/pkg/config"
	"github.com/heddiekitchen/storefront-client/pkg/logger"
	"github.com/heddiekitchen/storefront-client/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	backing, err := openStorage(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to open session storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := backing.Close(); err != nil {
			logg.Error(ctx, "error closing session storage", err)
		}
	}()

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithTokenSource(api.StorageTokenSource(backing)),
		api.WithLogger(logg),
		api.WithMetrics(metrics.NewRequestMetrics(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		logg.Error(ctx, "failed to build api client", err)
		os.Exit(1)
	}

	svc := services.New(client)
	ui := store.NewUIStore()
	sess := store.NewSessionStore(backing, client, logg)
	cart := store.NewCartStore(svc.Cart, ui, logg)

	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"backend": cfg.Storage.Backend,
	})
	logg.Info(ctx, "storefront client ready")

	if err := run(ctx, os.Args[1:], svc, sess, cart, logg); err != nil {
		logg.Error(ctx, "command failed", err)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendSQLite:
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	case config.StorageBackendRedis:
		return storage.NewRedisStore(ctx, cfg.Redis)
	case config.StorageBackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewFileStore(cfg.Storage.FilePath)
	}
}

func run(ctx context.Context, args []string, svc *services.Services, sess *store.SessionStore, cart *store.CartStore, logg *logger.Logger) error {
	if len(args) == 0 {
		return printStatus(ctx, sess, cart)
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: storefront login <username> <password>")
		}
		resp, err := svc.Auth.Login(ctx, services.LoginRequest{Username: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		if err := sess.SetUser(&resp.User, resp.Profile, resp.Token); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", resp.User.Username)
		return nil

	case "logout":
		if err := svc.Auth.Logout(ctx); err != nil {
			logg.Warn(ctx, "server-side logout failed, clearing local session anyway")
		}
		if err := sess.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "menu":
		page, err := svc.Menu.Items(ctx, services.MenuItemFilter{})
		if err != nil {
			return err
		}
		for _, item := range page.Results {
			fmt.Printf("%4d  %-30s %8s\n", item.ID, item.Name, item.Price.StringFixed(2))
		}
		return nil

	case "cart":
		if len(args) == 1 {
			if err := cart.FetchCart(ctx); err != nil {
				return err
			}
			return printStatus(ctx, sess, cart)
		}
		return runCartCommand(ctx, args[1:], cart)

	case "checkout":
		if len(args) != 5 {
			return fmt.Errorf("usage: storefront checkout <order-type> <address> <city> <phone>")
		}
		order, err := svc.Orders.Create(ctx, services.CreateOrderRequest{
			OrderType:       args[1],
			ShippingAddress: args[2],
			ShippingCity:    args[3],
			Phone:           args[4],
		})
		if err != nil {
			return err
		}
		if err := cart.FetchCart(ctx); err != nil {
			logg.Warn(ctx, "cart refresh after checkout failed")
		}
		fmt.Printf("order %s placed, total %s\n", order.OrderNumber, order.Total.StringFixed(2))
		return nil

	case "orders":
		page, err := svc.Orders.List(ctx)
		if err != nil {
			return err
		}
		for _, order := range page.Results {
			fmt.Printf("%s  %-12s %8s\n", order.OrderNumber, order.OrderType, order.Total.StringFixed(2))
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runCartCommand(ctx context.Context, args []string, cart *store.CartStore) error {
	switch args[0] {
	case "add":
		if len(args) != 3 {
			return fmt.Errorf("usage: storefront cart add <menu-item-id> <quantity>")
		}
		menuItemID, quantity, err := parseIntPair(args[1], args[2])
		if err != nil {
			return err
		}
		return cart.AddItem(ctx, menuItemID, quantity)

	case "update":
		if len(args) != 3 {
			return fmt.Errorf("usage: storefront cart update <cart-item-id> <quantity>")
		}
		cartItemID, quantity, err := parseIntPair(args[1], args[2])
		if err != nil {
			return err
		}
		return cart.UpdateItem(ctx, cartItemID, quantity)

	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: storefront cart remove <cart-item-id>")
		}
		cartItemID, _, err := parseIntPair(args[1], "0")
		if err != nil {
			return err
		}
		return cart.RemoveItem(ctx, cartItemID)

	case "clear":
		return cart.ClearCart(ctx)

	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func parseIntPair(a, b string) (int, int, error) {
	var first, second int
	if _, err := fmt.Sscanf(a, "%d", &first); err != nil {
		return 0, 0, fmt.Errorf("expected a number, got %q", a)
	}
	if _, err := fmt.Sscanf(b, "%d", &second); err != nil {
		return 0, 0, fmt.Errorf("expected a number, got %q", b)
	}
	return first, second, nil
}

func printStatus(ctx context.Context, sess *store.SessionStore, cart *store.CartStore) error {
	if user := sess.User(); user != nil {
		fmt.Printf("signed in as %s\n", user.Username)
	} else {
		fmt.Println("not signed in")
	}

	current := cart.Cart()
	if current == nil {
		fmt.Println("cart: empty")
		return nil
	}
	for _, item := range current.Items {
		fmt.Printf("%4d  %-30s x%d %8s\n", item.ID, item.MenuItem.Name, item.Quantity, item.Subtotal.StringFixed(2))
	}
	fmt.Printf("total: %s (%d items)\n", current.Total.StringFixed(2), current.ItemCount)
	return nil
}
