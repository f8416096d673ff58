package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth guards the planning API with a static API key set, taken from
// the X-API-Key header or the api_key query parameter. An empty key set
// disables the check entirely.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		if key == "" {
			reject(c, i18n.GetTranslator().Translate(i18n.ErrKeyAPIKeyRequired, locale), requestID)
			return
		}
		if !validKeys[key] {
			reject(c, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidAPIKey, locale), requestID)
			return
		}

		c.Next()
	}
}

func reject(c *gin.Context, message, requestID string) {
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(requestID)
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
