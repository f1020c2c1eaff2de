package handler

import (
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders/:id/payments")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.CustomerRoleGuard())

	g.POST("", h.initiate)
	g.GET("", h.list)

	//provider callback, authenticated by the opaque reference
	e.POST("/payments/webhook", h.webhook)
}

type PaymentInitiateRequest struct {
	// wallet number or card token, provider-specific
	Detail string `json:"detail"`
}

func (h *PaymentHandler) initiate(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PaymentInitiateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Initiate(c.Request().Context(), customerID, usecase.InitiatePaymentInput{
		OrderID: orderID,
		Detail:  req.Detail,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) list(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	payments, err := h.uc.ListForOrder(c.Request().Context(), customerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

type PaymentWebhookRequest struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func (h *PaymentHandler) webhook(c echo.Context) error {
	var req PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	success := strings.EqualFold(req.Status, "success")

	err := h.uc.ConfirmFromWebhook(c.Request().Context(), usecase.WebhookInput{
		Reference: req.Reference,
		Success:   success,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
