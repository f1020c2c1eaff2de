package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// Token roles; also the values the role guard middleware checks.
const (
	RoleMerchant = "MERCHANT"
	RoleCustomer = "CUSTOMER"
)

// Ivorian numbers: +225 followed by 10 digits.
var phoneRe = regexp.MustCompile(`^\+225[0-9]{10}$`)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthUsecase struct {
	merchantRepo repo.MerchantRepository
	customerRepo repo.CustomerRepository
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewAuthUsecase(merchantRepo repo.MerchantRepository, customerRepo repo.CustomerRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{
		merchantRepo: merchantRepo,
		customerRepo: customerRepo,
		jwtSecret:    jwtSecret,
		tokenTTL:     72 * time.Hour,
	}
}

type RegisterMerchantInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type RegisterCustomerInput struct {
	Name     string
	Phone    string
	Password string
	Email    string
}

type AuthOutput struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
}

func (u *AuthUsecase) RegisterMerchant(ctx context.Context, in RegisterMerchantInput) (AuthOutput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.Name) == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !emailRe.MatchString(in.Email) {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	if _, err := u.merchantRepo.FindByEmail(ctx, in.Email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	m, err := u.merchantRepo.Create(ctx, model.Merchant{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issue(m.ID, RoleMerchant, m.Name)
}

func (u *AuthUsecase) LoginMerchant(ctx context.Context, email string, password string) (AuthOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	m, err := u.merchantRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return u.issue(m.ID, RoleMerchant, m.Name)
}

func (u *AuthUsecase) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (AuthOutput, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.Name) == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !phoneRe.MatchString(in.Phone) {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid phone number")
	}
	if in.Email != "" && !emailRe.MatchString(in.Email) {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	if _, err := u.customerRepo.FindByPhone(ctx, in.Phone); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "phone already registered")
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	c, err := u.customerRepo.Create(ctx, model.Customer{
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issue(c.ID, RoleCustomer, c.Name)
}

func (u *AuthUsecase) LoginCustomer(ctx context.Context, phone string, password string) (AuthOutput, error) {
	phone = strings.TrimSpace(phone)

	c, err := u.customerRepo.FindByPhone(ctx, phone)
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return u.issue(c.ID, RoleCustomer, c.Name)
}

func (u *AuthUsecase) issue(id int64, role string, name string) (AuthOutput, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(u.tokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(u.jwtSecret))
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to sign token")
	}

	return AuthOutput{Token: signed, Role: role, ID: id, Name: name}, nil
}
