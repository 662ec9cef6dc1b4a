package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marketbot/core/logger"
	"marketbot/internal/metrics"
	"marketbot/internal/model"
	"marketbot/internal/storage"
)

// noProductsReply is shown when the tracked list is empty.
const noProductsReply = "No products available."

// ProductService implements product tracking on top of the product store.
type ProductService struct {
	products storage.ProductStore
}

// NewProductService builds a ProductService over the given store.
func NewProductService(products storage.ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Add records a product with the given expiry day for a user.
func (s *ProductService) Add(ctx context.Context, userID int64, name string, day time.Time) error {
	expiry := model.NewExpiryDate(day)
	p := model.Product{
		UserID: userID,
		Name:   &name,
		Expiry: &expiry,
	}
	if err := s.products.Insert(ctx, p); err != nil {
		return err
	}
	metrics.ProductsAdded.Inc()
	logger.Info(ctx, "service.products", "add",
		slog.Int64("user_id", userID),
		slog.String("product", logger.SanitizeLimit(name, 128)),
		slog.String("expiry", expiry.Human),
	)
	return nil
}

// ListFormatted renders the full tracked list as reply text, one product
// per line. Every user sees the same list.
func (s *ProductService) ListFormatted(ctx context.Context) (string, error) {
	items, err := s.products.All(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return noProductsReply, nil
	}

	var b strings.Builder
	for i := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(items[i].DisplayName())
		b.WriteString(" -> ")
		b.WriteString(items[i].DisplayExpiry())
	}

	logger.Debug(ctx, "service.products", "list",
		slog.Int("count", len(items)),
	)
	return b.String(), nil
}

// CountProducts returns the number of tracked products.
func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}
