package usecase

import (
	"context"
	"log"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/qr"
	repo "app/internal/repository"
)

type ShopUsecase struct {
	shopRepo    repo.ShopRepository
	productRepo repo.ProductRepository

	qrDir         string
	publicBaseURL string
}

func NewShopUsecase(shopRepo repo.ShopRepository, productRepo repo.ProductRepository, qrDir string, publicBaseURL string) *ShopUsecase {
	return &ShopUsecase{
		shopRepo:      shopRepo,
		productRepo:   productRepo,
		qrDir:         qrDir,
		publicBaseURL: publicBaseURL,
	}
}

type CreateShopInput struct {
	Name        string
	Description string
}

// CreateShop also generates the QR code pointing at the public shop
// page. QR failure does not fail the creation.
func (u *ShopUsecase) CreateShop(ctx context.Context, merchantID int64, in CreateShopInput) (model.Shop, error) {
	if merchantID <= 0 {
		return model.Shop{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	shop, err := u.shopRepo.Create(ctx, model.Shop{
		MerchantID:  merchantID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err != nil {
		return model.Shop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	path, err := qr.GenerateShopQR(u.qrDir, u.publicBaseURL, shop.ID)
	if err != nil {
		log.Printf("QR generation failed for shop %d: %v", shop.ID, err)
		return shop, nil
	}
	if err := u.shopRepo.SetQRCodePath(ctx, shop.ID, path); err != nil {
		log.Printf("failed to store QR path for shop %d: %v", shop.ID, err)
		return shop, nil
	}
	shop.QRCodePath = path

	return shop, nil
}

type UpdateShopInput struct {
	Name        string
	Description string
	Image       string
}

func (u *ShopUsecase) UpdateShop(ctx context.Context, merchantID int64, shopID int64, in UpdateShopInput) error {
	if merchantID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if shopID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid shop id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}

	owned, err := u.shopRepo.IsOwnedByMerchant(ctx, shopID, merchantID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.shopRepo.Update(ctx, model.Shop{
		ID:          shopID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
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

func (u *ShopUsecase) ListMyShops(ctx context.Context, merchantID int64) ([]model.Shop, error) {
	if merchantID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	shops, err := u.shopRepo.ListByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return shops, nil
}

// Public shop page: shop plus its products.
type ShopDetailOutput struct {
	Shop     model.Shop      `json:"shop"`
	Products []model.Product `json:"products"`
}

func (u *ShopUsecase) GetShopDetail(ctx context.Context, shopID int64) (ShopDetailOutput, error) {
	if shopID <= 0 {
		return ShopDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shop id")
	}

	shop, err := u.shopRepo.FindByID(ctx, shopID)
	if err == repo.ErrNotFound {
		return ShopDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ShopDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.productRepo.ListByShopID(ctx, shopID)
	if err != nil {
		return ShopDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ShopDetailOutput{Shop: shop, Products: products}, nil
}

// Search by name, or popular shops when the query is empty.
func (u *ShopUsecase) SearchShops(ctx context.Context, query string, limit int) ([]repo.ShopWithOrderCount, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	rows, err := u.shopRepo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

type ShareOutput struct {
	WhatsAppURL string `json:"whatsapp_url"`
	QRCodePath  string `json:"qr_code_path"`
}

// Share returns everything a merchant needs to promote a shop.
func (u *ShopUsecase) Share(ctx context.Context, merchantID int64, shopID int64) (ShareOutput, error) {
	if merchantID <= 0 {
		return ShareOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	owned, err := u.shopRepo.IsOwnedByMerchant(ctx, shopID, merchantID)
	if err != nil {
		return ShareOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return ShareOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	shop, err := u.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return ShareOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ShareOutput{
		WhatsAppURL: qr.WhatsAppShareLink(u.publicBaseURL, shopID),
		QRCodePath:  shop.QRCodePath,
	}, nil
}

func (u *ShopUsecase) Dashboard(ctx context.Context, merchantID int64) (repo.MerchantStats, error) {
	if merchantID <= 0 {
		return repo.MerchantStats{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	stats, err := u.shopRepo.Stats(ctx, merchantID)
	if err != nil {
		return repo.MerchantStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return stats, nil
}
