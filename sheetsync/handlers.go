package sheetsync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rengganislabs/ledger_backend/models"
)

// RefreshHandler serves POST /api/sync/refresh: a synchronous on-demand
// refresh, returning the resulting store status.
func RefreshHandler(store *Store, rules models.RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Refresh(c.Request.Context(), store, rules); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":  err.Error(),
				"status": store.Status(),
			})
			return
		}
		c.JSON(http.StatusOK, store.Status())
	}
}

// StatusHandler serves GET /api/sync/status.
func StatusHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Status())
	}
}
