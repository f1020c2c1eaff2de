package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
)

// Mocking repositories

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}
func (m *MockProductRepository) ListByShopID(ctx context.Context, shopID int64) ([]model.Product, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]model.Product), args.Error(1)
}
func (m *MockProductRepository) ListByMerchantID(ctx context.Context, merchantID int64) ([]model.Product, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]model.Product), args.Error(1)
}
func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]model.Product), args.Error(1)
}
func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}
func (m *MockProductRepository) UpdateFields(ctx context.Context, id int64, patch repo.ProductPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepository) IsOwnedByMerchant(ctx context.Context, productID int64, merchantID int64) (bool, error) {
	args := m.Called(ctx, productID, merchantID)
	return args.Bool(0), args.Error(1)
}

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Create(ctx context.Context, shop model.Shop) (model.Shop, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(model.Shop), args.Error(1)
}
func (m *MockShopRepository) FindByID(ctx context.Context, shopID int64) (model.Shop, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(model.Shop), args.Error(1)
}
func (m *MockShopRepository) ListByMerchantID(ctx context.Context, merchantID int64) ([]model.Shop, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]model.Shop), args.Error(1)
}
func (m *MockShopRepository) Update(ctx context.Context, shop model.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}
func (m *MockShopRepository) SetQRCodePath(ctx context.Context, shopID int64, path string) error {
	args := m.Called(ctx, shopID, path)
	return args.Error(0)
}
func (m *MockShopRepository) IsOwnedByMerchant(ctx context.Context, shopID int64, merchantID int64) (bool, error) {
	args := m.Called(ctx, shopID, merchantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockShopRepository) Search(ctx context.Context, query string, limit int) ([]repo.ShopWithOrderCount, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]repo.ShopWithOrderCount), args.Error(1)
}
func (m *MockShopRepository) Stats(ctx context.Context, merchantID int64) (repo.MerchantStats, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(repo.MerchantStats), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreateActiveByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(model.Cart), args.Error(1)
}
func (m *MockCartRepository) FindActiveByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(model.Cart), args.Error(1)
}
func (m *MockCartRepository) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}
func (m *MockCartRepository) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).([]model.CartItem), args.Error(1)
}
func (m *MockCartItemRepository) AddQuantity(ctx context.Context, cartID int64, productID int64, delta int64) error {
	args := m.Called(ctx, cartID, productID, delta)
	return args.Error(0)
}
func (m *MockCartItemRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}
func (m *MockCartItemRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	return args.Get(0).(model.CartItem), args.Error(1)
}
func (m *MockCartItemRepository) IsOwnedByCustomer(ctx context.Context, cartItemID int64, customerID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, customerID)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}
func (m *MockOrderRepository) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrderRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderRepository) UpdateStatusIfCurrent(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepository) FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, customerID, key)
	return args.Get(0).(model.Order), args.Bool(1), args.Error(2)
}
func (m *MockOrderRepository) ListByMerchantID(ctx context.Context, merchantID int64, f repo.MerchantOrderListFilter) ([]repo.MerchantOrderRow, int64, error) {
	args := m.Called(ctx, merchantID, f)
	return args.Get(0).([]repo.MerchantOrderRow), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrderRepository) IsOwnedByMerchant(ctx context.Context, orderID int64, merchantID int64) (bool, error) {
	args := m.Called(ctx, orderID, merchantID)
	return args.Bool(0), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}
func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}
func (m *MockInventoryRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Payment), args.Error(1)
}
func (m *MockPaymentRepository) FindByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(model.Payment), args.Error(1)
}
func (m *MockPaymentRepository) FindByProviderRef(ctx context.Context, ref string) (model.Payment, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(model.Payment), args.Error(1)
}
func (m *MockPaymentRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.Payment), args.Error(1)
}
func (m *MockPaymentRepository) UpdateStatusIfCurrent(ctx context.Context, paymentID int64, from model.PaymentStatus, to model.PaymentStatus) (bool, error) {
	args := m.Called(ctx, paymentID, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepository) MarkAwaitingConfirmation(ctx context.Context, paymentID int64, providerRef string) (bool, error) {
	args := m.Called(ctx, paymentID, providerRef)
	return args.Bool(0), args.Error(1)
}

type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, mc model.Merchant) (model.Merchant, error) {
	args := m.Called(ctx, mc)
	return args.Get(0).(model.Merchant), args.Error(1)
}
func (m *MockMerchantRepository) FindByID(ctx context.Context, merchantID int64) (model.Merchant, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(model.Merchant), args.Error(1)
}
func (m *MockMerchantRepository) FindByEmail(ctx context.Context, email string) (model.Merchant, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Merchant), args.Error(1)
}
func (m *MockMerchantRepository) UpdateFields(ctx context.Context, merchantID int64, patch repo.MerchantPatch) error {
	args := m.Called(ctx, merchantID, patch)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(model.Customer), args.Error(1)
}
func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(model.Customer), args.Error(1)
}
func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (model.Customer, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(model.Customer), args.Error(1)
}
func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Customer), args.Error(1)
}

// fakeTxRepos hands the test's mocks to code running inside WithinTx.
type fakeTxRepos struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
	payments   repo.PaymentRepository
}

func (f *fakeTxRepos) Orders() repo.OrderRepository         { return f.orders }
func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository { return f.orderItems }
func (f *fakeTxRepos) Carts() repo.CartRepository           { return f.carts }
func (f *fakeTxRepos) CartItems() repo.CartItemRepository   { return f.cartItems }
func (f *fakeTxRepos) Inventory() repo.InventoryRepository  { return f.inventory }
func (f *fakeTxRepos) Products() repo.ProductRepository     { return f.products }
func (f *fakeTxRepos) Payments() repo.PaymentRepository     { return f.payments }

// fakeTxManager runs fn immediately against the fixed repos; rollback
// behavior itself is covered by the sqlite integration tests.
type fakeTxManager struct {
	repos *fakeTxRepos
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.ChargeResult), args.Error(1)
}

// records status-change notifications synchronously
type recordingNotifier struct {
	calls []struct {
		CustomerID int64
		OrderID    int64
		Status     model.OrderStatus
	}
}

func (r *recordingNotifier) OrderStatusChanged(customerID int64, orderID int64, status model.OrderStatus) {
	r.calls = append(r.calls, struct {
		CustomerID int64
		OrderID    int64
		Status     model.OrderStatus
	}{customerID, orderID, status})
}
