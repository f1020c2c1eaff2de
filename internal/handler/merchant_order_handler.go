package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MerchantOrderHandler struct {
	uc *usecase.MerchantOrderUsecase
}

func NewMerchantOrderHandler(uc *usecase.MerchantOrderUsecase) *MerchantOrderHandler {
	return &MerchantOrderHandler{uc: uc}
}

func (h *MerchantOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/merchant/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.MerchantRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/:id/pay", h.markPaid)
	g.POST("/:id/deliver", h.markDelivered)
}

func (h *MerchantOrderHandler) list(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var from *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = &t
	}

	var to *time.Time
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		to = &t
	}

	out, err := h.uc.ListOrders(c.Request().Context(), merchantID, repository.MerchantOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		From:   from,
		To:     to,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantOrderHandler) detail(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderDetail(c.Request().Context(), merchantID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantOrderHandler) markPaid(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkPaid(c.Request().Context(), merchantID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MerchantOrderHandler) markDelivered(c echo.Context) error {
	merchantID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkDelivered(c.Request().Context(), merchantID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
