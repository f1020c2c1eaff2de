package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

func newCartTestRig() (*CartUsecase, *MockCartRepository, *MockCartItemRepository, *MockProductRepository, *MockShopRepository) {
	cartRepo := new(MockCartRepository)
	cartItemRepo := new(MockCartItemRepository)
	productRepo := new(MockProductRepository)
	shopRepo := new(MockShopRepository)
	uc := NewCartUsecase(cartRepo, cartItemRepo, productRepo, shopRepo)
	return uc, cartRepo, cartItemRepo, productRepo, shopRepo
}

func TestAddToCartIncrementsLine(t *testing.T) {
	uc, cartRepo, cartItemRepo, productRepo, shopRepo := newCartTestRig()
	ctx := context.Background()

	cart := model.Cart{ID: 3, CustomerID: 7, Status: model.CartStatusActive}

	cartRepo.On("GetOrCreateActiveByCustomerID", ctx, int64(7)).Return(cart, nil)
	productRepo.On("FindByID", ctx, int64(101)).Return(model.Product{ID: 101, ShopID: 1, Name: "Bissap", Price: 500}, nil)
	cartItemRepo.On("AddQuantity", ctx, cart.ID, int64(101), int64(2)).Return(nil)
	cartItemRepo.On("ListByCartID", ctx, cart.ID).Return([]model.CartItem{
		{ID: 1, CartID: cart.ID, ProductID: 101, Quantity: 3},
	}, nil)
	productRepo.On("FindByIDs", ctx, []int64{101}).Return(map[int64]model.Product{
		101: {ID: 101, ShopID: 1, Name: "Bissap", Price: 500},
	}, nil)
	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, Name: "Chez Awa"}, nil)

	out, err := uc.AddToCart(ctx, 7, AddCartInput{ProductID: 101, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1500), out.Total)
	assert.Equal(t, "Chez Awa", out.Items[0].ShopName)

	cartItemRepo.AssertExpectations(t)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	uc, cartRepo, cartItemRepo, productRepo, _ := newCartTestRig()
	ctx := context.Background()

	cartRepo.On("GetOrCreateActiveByCustomerID", ctx, int64(7)).Return(model.Cart{ID: 3}, nil)
	productRepo.On("FindByID", ctx, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, 7, AddCartInput{ProductID: 999, Quantity: 1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	cartItemRepo.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A product deleted after being carted disappears from the snapshot
// without an error; the total only covers what resolved.
func TestGetCartDropsVanishedProducts(t *testing.T) {
	uc, cartRepo, cartItemRepo, productRepo, shopRepo := newCartTestRig()
	ctx := context.Background()

	cart := model.Cart{ID: 3, CustomerID: 7, Status: model.CartStatusActive}

	cartRepo.On("GetOrCreateActiveByCustomerID", ctx, int64(7)).Return(cart, nil)
	cartItemRepo.On("ListByCartID", ctx, cart.ID).Return([]model.CartItem{
		{ID: 1, CartID: cart.ID, ProductID: 101, Quantity: 2},
		{ID: 2, CartID: cart.ID, ProductID: 999, Quantity: 5},
	}, nil)
	productRepo.On("FindByIDs", ctx, []int64{101, 999}).Return(map[int64]model.Product{
		101: {ID: 101, ShopID: 1, Name: "Bissap", Price: 500},
	}, nil)
	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, Name: "Chez Awa"}, nil)

	out, err := uc.GetCart(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(101), out.Items[0].ProductID)
	assert.Equal(t, int64(1000), out.Total)
}

// Setting a target quantity applies the signed difference against the
// current line.
func TestSetQuantityComputesDelta(t *testing.T) {
	uc, cartRepo, cartItemRepo, productRepo, _ := newCartTestRig()
	ctx := context.Background()

	cart := model.Cart{ID: 3, CustomerID: 7, Status: model.CartStatusActive}

	cartRepo.On("GetOrCreateActiveByCustomerID", ctx, int64(7)).Return(cart, nil)
	cartItemRepo.On("ListByCartID", ctx, cart.ID).Return([]model.CartItem{
		{ID: 1, CartID: cart.ID, ProductID: 101, Quantity: 5},
	}, nil).Once()
	cartItemRepo.On("AddQuantity", ctx, cart.ID, int64(101), int64(-3)).Return(nil)
	cartItemRepo.On("ListByCartID", ctx, cart.ID).Return([]model.CartItem{
		{ID: 1, CartID: cart.ID, ProductID: 101, Quantity: 2},
	}, nil)
	productRepo.On("FindByIDs", ctx, []int64{101}).Return(map[int64]model.Product{}, nil)

	out, err := uc.SetQuantity(ctx, 7, 101, 2)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	cartItemRepo.AssertExpectations(t)
}

func TestRemoveFromCartTargetsZero(t *testing.T) {
	uc, cartRepo, cartItemRepo, productRepo, _ := newCartTestRig()
	ctx := context.Background()

	cart := model.Cart{ID: 3, CustomerID: 7, Status: model.CartStatusActive}

	cartRepo.On("GetOrCreateActiveByCustomerID", ctx, int64(7)).Return(cart, nil)
	cartItemRepo.On("ListByCartID", ctx, cart.ID).Return([]model.CartItem{
		{ID: 1, CartID: cart.ID, ProductID: 101, Quantity: 4},
	}, nil).Once()
	cartItemRepo.On("AddQuantity", ctx, cart.ID, int64(101), int64(-4)).Return(nil)
	cartItemRepo.On("ListByCartID", ctx, cart.ID).Return([]model.CartItem{}, nil)
	productRepo.On("FindByIDs", ctx, []int64{}).Return(map[int64]model.Product{}, nil)

	out, err := uc.RemoveFromCart(ctx, 7, 101)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestEmptyCart(t *testing.T) {
	uc, cartRepo, _, _, _ := newCartTestRig()
	ctx := context.Background()

	cart := model.Cart{ID: 3, CustomerID: 7, Status: model.CartStatusActive}
	cartRepo.On("GetOrCreateActiveByCustomerID", ctx, int64(7)).Return(cart, nil)
	cartRepo.On("Clear", ctx, cart.ID).Return(nil)

	out, err := uc.EmptyCart(ctx, 7)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
	cartRepo.AssertExpectations(t)
}
