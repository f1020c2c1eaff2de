package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Public shop pages plus the merchant shop management routes.
type ShopHandler struct {
	uc *usecase.ShopUsecase
}

func NewShopHandler(uc *usecase.ShopUsecase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

func (h *ShopHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/boutiques", h.search)
	e.GET("/boutiques/:id", h.detail)

	g := e.Group("/merchant/boutiques")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.MerchantRoleGuard())

	g.GET("", h.listMine)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.GET("/:id/share", h.share)

	d := e.Group("/merchant/dashboard")
	d.Use(middleware.AuthJWT(cfg))
	d.Use(middleware.MerchantRoleGuard())
	d.GET("", h.dashboard)
}

func (h *ShopHandler) search(c echo.Context) error {
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	rows, err := h.uc.SearchShops(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ShopHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetShopDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) listMine(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	shops, err := h.uc.ListMyShops(c.Request().Context(), merchantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, shops)
}

type ShopCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ShopHandler) create(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ShopCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	shop, err := h.uc.CreateShop(c.Request().Context(), merchantID, usecase.CreateShopInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, shop)
}

type ShopUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (h *ShopHandler) update(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ShopUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err = h.uc.UpdateShop(c.Request().Context(), merchantID, id, usecase.UpdateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHandler) share(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Share(c.Request().Context(), merchantID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) dashboard(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	stats, err := h.uc.Dashboard(c.Request().Context(), merchantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
