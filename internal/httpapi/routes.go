package httpapi

import (
	"storefront-app/internal/auth"
	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Register wires the platform callbacks and the session-authenticated API.
func (h Handlers) Register(r gin.IRouter) {
	// Install must be served at the redirect_uri path sent during the exchange.
	r.GET(bigcommerce.InstallCallbackPath, h.Install)
	r.GET("/bigcommerce/load", h.Load)
	r.GET("/bigcommerce/uninstall", h.Uninstall)

	v1 := r.Group("/api/v1")
	{
		// Gate-only: answers whether the session is still valid.
		v1.GET("/session", auth.RequireValidSession(h.Auth), h.Session)

		authed := v1.Group("")
		authed.Use(auth.RequireSession(h.Auth), rbac.RequireStore(), rbac.RequireAnyRole(auth.RoleUser))
		authed.GET("/me", h.Me)
		authed.GET("/store", h.StoreInformation)
		authed.PUT("/widget", h.PutWidget)
		authed.DELETE("/widget", h.DeleteWidget)
	}
}
