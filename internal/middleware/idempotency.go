package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pack-pricing-service/internal/service"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute

	idempotencyReplayHeader = "X-Idempotency-Replayed"
	maxIdempotentBody       = 1 << 20
)

// cachedResponse is a replayable response. Values are never mutated after Set.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *service.ShardedCache[cachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   service.NewShardedCache[cachedResponse](10000, IdempotencyKeyTTL, 16),
		Enabled: true,
	}
}

// Idempotency replays the first successful response of a POST, PUT or PATCH carrying an
// Idempotency-Key. Keys are scoped to the session, method, path and body so a retried
// add-to-cart is not applied twice.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, ok := idempotencyCacheKey(c, key)
		if !ok {
			c.Next()
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			c.Header(idempotencyReplayHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if status := writer.Status(); status >= 200 && status < 300 {
			cfg.Cache.Set(cacheKey, cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        bytes.Clone(writer.body.Bytes()),
			})
		}
	}
}

// idempotencyCacheKey hashes the key with the request identity. Bodies above
// maxIdempotentBody are not cached.
func idempotencyCacheKey(c *gin.Context, idempotencyKey string) (string, bool) {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, GetSessionID(c), c.Request.Method, c.Request.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}

	if c.Request.Body != nil {
		original := c.Request.Body
		body, err := io.ReadAll(io.LimitReader(original, maxIdempotentBody+1))
		c.Request.Body = readCloser{io.MultiReader(bytes.NewReader(body), original), original}
		if err != nil || len(body) > maxIdempotentBody {
			return "", false
		}
		hasher.Write(body)
	}

	return hex.EncodeToString(hasher.Sum(nil)), true
}

type readCloser struct {
	io.Reader
	io.Closer
}

// captureWriter tees the response body.
type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
