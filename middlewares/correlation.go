package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rengganislabs/ledger_backend/utils"
)

const correlationHeader = "X-Correlation-Id"

// CorrelationMiddleware tags every request with a correlation id,
// preferring one supplied by the caller.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.GetHeader(correlationHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		c.Request = c.Request.WithContext(
			utils.SetCorrelationIdInContext(c.Request.Context(), correlationId),
		)
		c.Header(correlationHeader, correlationId)
		c.Next()
	}
}
