package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NovaMidia-Tec/painel/internal/http/middleware"
	"github.com/NovaMidia-Tec/painel/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

// HandlerFuncWithAuth runs after JWTMiddleware has loaded the current user.
type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)

// HandlerFunc is for public endpoints with no session.
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// Controller wraps a gin group so modules can mount endpoints that return
// (result, *APIError) instead of writing to the context themselves.
type Controller struct {
	Group *gin.RouterGroup
}

func resolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func resolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth) {
	c.Group.GET(path, resolveEndpointWithAuth(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth) {
	c.Group.POST(path, resolveEndpointWithAuth(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth) {
	c.Group.PUT(path, resolveEndpointWithAuth(h))
}

func (c *Controller) DELETE(path string, h HandlerFuncWithAuth) {
	c.Group.DELETE(path, resolveEndpointWithAuth(h))
}

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.Group.GET(path, resolveEndpoint(h))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, resolveEndpoint(h))
}
