package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/NovaMidia-Tec/painel/internal/db"
)

const storeKey = "store"

// InjectStore makes the db store available to downstream middleware and
// handlers via the gin context.
func InjectStore(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storeKey, store)
		c.Next()
	}
}

// GetStore retrieves the injected db.Store from the context.
func GetStore(c *gin.Context) (db.Store, bool) {
	v, exists := c.Get(storeKey)
	if !exists {
		return nil, false
	}
	store, ok := v.(db.Store)
	return store, ok
}
