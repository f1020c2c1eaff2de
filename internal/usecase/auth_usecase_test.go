package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

const testSecret = "test_secret"

func parseTestToken(t *testing.T, raw string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(raw, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestRegisterMerchantIssuesMerchantToken(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	customerRepo := new(MockCustomerRepository)
	uc := NewAuthUsecase(merchantRepo, customerRepo, testSecret)
	ctx := context.Background()

	merchantRepo.On("FindByEmail", ctx, "awa@example.ci").Return(model.Merchant{}, repo.ErrNotFound)
	merchantRepo.On("Create", ctx, mock.MatchedBy(func(m model.Merchant) bool {
		if m.Email != "awa@example.ci" || m.Name != "Awa" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte("motdepasse")) == nil
	})).Return(model.Merchant{ID: 5, Name: "Awa", Email: "awa@example.ci"}, nil)

	out, err := uc.RegisterMerchant(ctx, RegisterMerchantInput{
		Name:     "Awa",
		Email:    "Awa@Example.ci",
		Password: "motdepasse",
	})

	assert.NoError(t, err)
	assert.Equal(t, RoleMerchant, out.Role)
	assert.Equal(t, int64(5), out.ID)

	claims := parseTestToken(t, out.Token)
	assert.Equal(t, "MERCHANT", claims["role"])
	assert.Equal(t, float64(5), claims["sub"])
}

func TestRegisterMerchantDuplicateEmail(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	uc := NewAuthUsecase(merchantRepo, new(MockCustomerRepository), testSecret)
	ctx := context.Background()

	merchantRepo.On("FindByEmail", ctx, "awa@example.ci").Return(model.Merchant{ID: 5}, nil)

	_, err := uc.RegisterMerchant(ctx, RegisterMerchantInput{
		Name:     "Awa",
		Email:    "awa@example.ci",
		Password: "motdepasse",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	merchantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterCustomerValidatesPhone(t *testing.T) {
	uc := NewAuthUsecase(new(MockMerchantRepository), new(MockCustomerRepository), testSecret)

	cases := []string{"", "0700000001", "+22507000000", "+2250700000001234", "+33612345678"}
	for _, phone := range cases {
		_, err := uc.RegisterCustomer(context.Background(), RegisterCustomerInput{
			Name:     "Koffi",
			Phone:    phone,
			Password: "motdepasse",
		})

		he, ok := AsHTTPError(err)
		assert.True(t, ok, "phone %q", phone)
		assert.Equal(t, http.StatusBadRequest, he.Status, "phone %q", phone)
	}
}

func TestRegisterCustomerIssuesCustomerToken(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := NewAuthUsecase(new(MockMerchantRepository), customerRepo, testSecret)
	ctx := context.Background()

	customerRepo.On("FindByPhone", ctx, "+2250700000001").Return(model.Customer{}, repo.ErrNotFound)
	customerRepo.On("Create", ctx, mock.Anything).Return(model.Customer{ID: 7, Name: "Koffi", Phone: "+2250700000001"}, nil)

	out, err := uc.RegisterCustomer(ctx, RegisterCustomerInput{
		Name:     "Koffi",
		Phone:    "+2250700000001",
		Password: "motdepasse",
	})

	assert.NoError(t, err)
	assert.Equal(t, RoleCustomer, out.Role)

	claims := parseTestToken(t, out.Token)
	assert.Equal(t, "CUSTOMER", claims["role"])
	assert.Equal(t, float64(7), claims["sub"])
}

func TestLoginCustomerWrongPassword(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := NewAuthUsecase(new(MockMerchantRepository), customerRepo, testSecret)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
	customerRepo.On("FindByPhone", ctx, "+2250700000001").Return(model.Customer{ID: 7, PasswordHash: string(hash)}, nil)

	_, err := uc.LoginCustomer(ctx, "+2250700000001", "mauvais")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

// Unknown phone and wrong password must be indistinguishable.
func TestLoginCustomerUnknownPhone(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := NewAuthUsecase(new(MockMerchantRepository), customerRepo, testSecret)
	ctx := context.Background()

	customerRepo.On("FindByPhone", ctx, "+2250700000009").Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.LoginCustomer(ctx, "+2250700000009", "motdepasse")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

func TestLoginMerchantSucceeds(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	uc := NewAuthUsecase(merchantRepo, new(MockCustomerRepository), testSecret)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
	merchantRepo.On("FindByEmail", ctx, "awa@example.ci").Return(model.Merchant{ID: 5, Name: "Awa", PasswordHash: string(hash)}, nil)

	out, err := uc.LoginMerchant(ctx, " Awa@example.ci ", "motdepasse")

	assert.NoError(t, err)
	assert.Equal(t, RoleMerchant, out.Role)
	assert.Equal(t, int64(5), out.ID)
}
