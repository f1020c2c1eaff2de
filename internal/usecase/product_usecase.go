package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	shopRepo      repo.ShopRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	shopRepo repo.ShopRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		shopRepo:      shopRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// All products across the merchant's own shops.
func (u *ProductUsecase) ListMerchantProducts(ctx context.Context, merchantID int64) ([]model.Product, error) {
	if merchantID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.productRepo.ListByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type CreateProductInput struct {
	ShopID      int64
	Name        string
	Description string
	Price       int64
	Stock       int64
	Category    string
	Image       string
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, merchantID int64, in CreateProductInput) (int64, error) {
	if merchantID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ShopID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid shop_id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	owned, err := u.shopRepo.IsOwnedByMerchant(ctx, in.ShopID, merchantID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return 0, NewHTTPError(http.StatusNotFound, "not found")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		ShopID:      in.ShopID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Image:       in.Image,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

// Partial update: nil fields keep their current value.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int64
	Category    *string
	Image       *string
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, merchantID int64, productID int64, in UpdateProductInput) error {
	if merchantID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price != nil && *in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	owned, err := u.productRepo.IsOwnedByMerchant(ctx, productID, merchantID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.productRepo.UpdateFields(ctx, productID, repo.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Image:       in.Image,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, merchantID int64, productID int64) error {
	if merchantID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	owned, err := u.productRepo.IsOwnedByMerchant(ctx, productID, merchantID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetStock replaces the stock value outright (merchant correction, not
// a checkout decrement).
func (u *ProductUsecase) SetStock(ctx context.Context, merchantID int64, productID int64, newStock int64) error {
	if merchantID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	owned, err := u.productRepo.IsOwnedByMerchant(ctx, productID, merchantID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.inventoryRepo.SetStock(ctx, productID, newStock)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
