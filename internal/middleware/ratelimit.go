package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP. formatted uses the limiter syntax, e.g. "10-M".
func RateLimit(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)
	limiterMiddleware := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.LogWarn("Rate limit reached", map[string]interface{}{"path": r.URL.Path, "remote_addr": r.RemoteAddr})
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(gin.H{"error": utils.NewAPIError(http.StatusTooManyRequests,
				utils.ErrCodeTooManyRequests, "Too many requests, try again later", "")})
		}))

	return func(c *gin.Context) {
		passed := false
		limiterMiddleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
			return
		}
		c.Next()
	}, nil
}
