package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/infrastructure/logger"
	"github.com/erp/reseller/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyHeaderKey carries the client-chosen key of a retried write
	IdempotencyHeaderKey = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds the accepted header value
	MaxIdempotencyKeyLength = 255
)

// Idempotency rejects a second request carrying an Idempotency-Key that is
// still held by an earlier one. Requests without the header pass through.
// The key is released when the handler does not answer with a 2xx so the
// client can retry a failed write.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeaderKey))
		if key == "" || store == nil {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c),
			))
			return
		}

		ctx := c.Request.Context()
		log := logger.L(ctx)

		tenant := ""
		if tenantID, ok := GetTenantID(c); ok {
			tenant = tenantID.String()
		}
		storeKey := strings.Join([]string{tenant, c.Request.Method, c.FullPath(), key}, ":")

		reserved, err := store.Reserve(ctx, storeKey, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable, processing request without it",
				zap.String("idempotency_key", key), zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestInProgress,
				"A request with this Idempotency-Key has already been processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			if err := store.Release(ctx, storeKey); err != nil {
				log.Warn("Failed to release idempotency key",
					zap.String("idempotency_key", key), zap.Error(err))
			}
		}
	}
}
