package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/notifications")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.CustomerRoleGuard())

	g.GET("", h.list)
}

func (h *NotificationHandler) list(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	items, err := h.uc.ListMine(c.Request().Context(), customerID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
