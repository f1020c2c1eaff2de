package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type MerchantUsecase struct {
	merchantRepo repo.MerchantRepository
}

func NewMerchantUsecase(merchantRepo repo.MerchantRepository) *MerchantUsecase {
	return &MerchantUsecase{merchantRepo: merchantRepo}
}

func (u *MerchantUsecase) GetProfile(ctx context.Context, merchantID int64) (model.Merchant, error) {
	if merchantID <= 0 {
		return model.Merchant{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	m, err := u.merchantRepo.FindByID(ctx, merchantID)
	if err == repo.ErrNotFound {
		return model.Merchant{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Merchant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

type UpdateMerchantProfileInput struct {
	Name      *string
	Phone     *string
	Address   *string
	Image     *string
	Latitude  *float64
	Longitude *float64
}

func (u *MerchantUsecase) UpdateProfile(ctx context.Context, merchantID int64, in UpdateMerchantProfileInput) error {
	if merchantID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return NewHTTPError(http.StatusBadRequest, "latitude and longitude must be set together")
	}

	err := u.merchantRepo.UpdateFields(ctx, merchantID, repo.MerchantPatch{
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		Image:     in.Image,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
