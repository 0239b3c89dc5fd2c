package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	apiCachePrefix      = "forms:api-cache:"
	defaultHTTPCacheTTL = 15 * time.Second
	httpCacheMaxBody    = 1 << 20 // 1 MiB
)

// HTTPCacheOptions configures the Redis-backed response cache.
type HTTPCacheOptions struct {
	TTL       time.Duration
	Disable   bool
	SkipPaths []string
}

// cachedHeaderNames lists the response headers replayed on a cache hit.
// Content-Disposition carries the suggested file name on PDF downloads.
var cachedHeaderNames = []string{"Content-Disposition"}

type cachedHTTPResponse struct {
	Status      int               `json:"status"`
	ContentType string            `json:"content_type,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	BodyBase64  string            `json:"body_base64"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body     []byte
	overflow bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > httpCacheMaxBody {
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// HTTPCache caches successful anonymous GET responses in Redis for a short
// TTL, shielding the public listing endpoints from repeated reads.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	if opts.TTL <= 0 {
		opts.TTL = defaultHTTPCacheTTL
	}
	skip := make(map[string]struct{}, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if opts.Disable || c.Request.Method != http.MethodGet || CurrentIdentity(c) != nil {
			c.Next()
			return
		}
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := apiCachePrefix + c.Request.URL.Path + "?" + c.Request.URL.RawQuery

		if raw, err := rdb.Get(ctx, key).Result(); err == nil {
			var cached cachedHTTPResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				body, decErr := base64.StdEncoding.DecodeString(cached.BodyBase64)
				if decErr == nil {
					c.Header("x-forms-cache", "hit")
					for name, value := range cached.Headers {
						c.Header(name, value)
					}
					c.Data(cached.Status, cached.ContentType, body)
					c.Abort()
					return
				}
			}
		}

		writer := &cacheBodyWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.overflow || c.Writer.Status() != http.StatusOK {
			return
		}
		var headers map[string]string
		for _, name := range cachedHeaderNames {
			if value := c.Writer.Header().Get(name); value != "" {
				if headers == nil {
					headers = make(map[string]string, len(cachedHeaderNames))
				}
				headers[name] = value
			}
		}
		payload, err := json.Marshal(cachedHTTPResponse{
			Status:      c.Writer.Status(),
			ContentType: c.Writer.Header().Get("Content-Type"),
			Headers:     headers,
			BodyBase64:  base64.StdEncoding.EncodeToString(writer.body),
		})
		if err != nil {
			return
		}
		rdb.Set(ctx, key, payload, opts.TTL)
	}
}
