package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MerchantHandler struct {
	uc *usecase.MerchantUsecase
}

func NewMerchantHandler(uc *usecase.MerchantUsecase) *MerchantHandler {
	return &MerchantHandler{uc: uc}
}

func (h *MerchantHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/merchant/profile")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.MerchantRoleGuard())

	g.GET("", h.profile)
	g.PUT("", h.update)
}

func (h *MerchantHandler) profile(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	m, err := h.uc.GetProfile(c.Request().Context(), merchantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

type MerchantProfileUpdateRequest struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	Address   *string  `json:"address"`
	Image     *string  `json:"image"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *MerchantHandler) update(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req MerchantProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.UpdateProfile(c.Request().Context(), merchantID, usecase.UpdateMerchantProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Image:     req.Image,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
