package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/storefront/internal/model"
	"github.com/storefront/storefront/internal/repository"
)

type output struct {
	UserID     int64   `json:"user_id"`
	Email      string  `json:"email"`
	ProductIDs []int64 `json:"product_ids"`
	OrderID    int64   `json:"order_id"`
}

type productSeed struct {
	name  string
	price decimal.Decimal
}

func main() {
	var (
		databaseURL   = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		name          = flag.String("name", "Demo Customer", "User name")
		email         = flag.String("email", "demo@storefront.local", "User email")
		address       = flag.String("address", "1 Market Street", "User address (empty for none)")
		productsInput = flag.String("products", "Widget=9.99,Gadget=24.50", "Comma-separated name=price pairs")
		format        = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	seeds, err := parseProducts(*productsInput)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL, repository.PoolOptions{MaxConns: 2})
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	out, err := seed(ctx, repo, *name, *email, *address, seeds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		repo.Close()
		os.Exit(1)
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("user=%d order=%d products=%v\n", out.UserID, out.OrderID, out.ProductIDs)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		repo.Close()
		os.Exit(1)
	}
}

func parseProducts(input string) ([]productSeed, error) {
	var seeds []productSeed
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawPrice, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid product %q: want name=price", part)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", name, err)
		}
		seeds = append(seeds, productSeed{name: strings.TrimSpace(name), price: price})
	}
	return seeds, nil
}

// seed creates the user (or reuses the one holding email), the products
// and a single order containing all of them.
func seed(ctx context.Context, repo *repository.Repository, name, email, address string, seeds []productSeed) (*output, error) {
	user, err := ensureUser(ctx, repo, name, email, address)
	if err != nil {
		return nil, err
	}

	out := &output{UserID: user.ID, Email: user.Email}

	order, err := repo.CreateOrder(ctx, model.OrderInput{UserID: &user.ID})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	out.OrderID = order.ID

	for _, s := range seeds {
		product, err := repo.CreateProduct(ctx, model.ProductInput{ProductName: &s.name, Price: &s.price})
		if err != nil {
			return nil, fmt.Errorf("create product %s: %w", s.name, err)
		}
		if err := repo.AddProductToOrder(ctx, order.ID, product.ID); err != nil {
			return nil, fmt.Errorf("add product %d to order: %w", product.ID, err)
		}
		out.ProductIDs = append(out.ProductIDs, product.ID)
	}

	return out, nil
}

func ensureUser(ctx context.Context, repo *repository.Repository, name, email, address string) (*model.User, error) {
	in := model.UserInput{Name: &name, Email: &email}
	if address != "" {
		in.Address = &address
	}

	user, err := repo.CreateUser(ctx, in)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUniqueViolation) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("email %s is taken but no user holds it", email)
}
