package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// CartUsecase covers the customer-facing /cart operations. The cart is
// a real entity, not session state: one ACTIVE cart per customer.
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	shopRepo     repo.ShopRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	shopRepo repo.ShopRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		shopRepo:     shopRepo,
	}
}

type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
	ShopName  string `json:"shop_name"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart returns the snapshot (empty cart is created on first read).
func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart increments the line for the product. Stock is deliberately
// not checked here; availability is settled at checkout.
func (u *CartUsecase) AddToCart(ctx context.Context, customerID int64, in AddCartInput) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.AddQuantity(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// SetQuantity moves the line to a target quantity by applying the
// signed difference; a target of zero (or less) removes the line.
func (u *CartUsecase) SetQuantity(ctx context.Context, customerID int64, productID int64, target int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var current int64
	for _, it := range items {
		if it.ProductID == productID {
			current = it.Quantity
			break
		}
	}

	delta := target - current
	if delta != 0 {
		if err := u.cartItemRepo.AddQuantity(ctx, cart.ID, productID, delta); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.buildCartResponse(ctx, cart.ID)
}

func (u *CartUsecase) RemoveFromCart(ctx context.Context, customerID int64, productID int64) (CartResponse, error) {
	return u.SetQuantity(ctx, customerID, productID, 0)
}

// EmptyCart drops every line.
func (u *CartUsecase) EmptyCart(ctx context.Context, customerID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil && err != repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartResponse{Items: []CartItemResponse{}, Total: 0}, nil
}

// buildCartResponse resolves the lines against the live catalog.
// Products that no longer exist are silently dropped; the total only
// covers resolved items. Without mutation in between, two snapshots
// are identical.
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0
	shopNames := map[int64]string{}

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}

		name, ok := shopNames[p.ShopID]
		if !ok {
			if shop, err := u.shopRepo.FindByID(ctx, p.ShopID); err == nil {
				name = shop.Name
			}
			shopNames[p.ShopID] = name
		}

		subtotal := p.Price * it.Quantity
		respItems = append(respItems, CartItemResponse{
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
			ShopName:  name,
		})
		total += subtotal
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
