package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MerchantRoleGuard rejects non-merchant tokens on merchant routes.
func MerchantRoleGuard() echo.MiddlewareFunc {
	return requireRole("MERCHANT", "merchant only")
}

// CustomerRoleGuard rejects non-customer tokens on cart/order routes.
func CustomerRoleGuard() echo.MiddlewareFunc {
	return requireRole("CUSTOMER", "customer only")
}

func requireRole(want string, deniedMsg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != want {
				return c.JSON(http.StatusForbidden, errorJSON(deniedMsg))
			}

			return next(c)
		}
	}
}
