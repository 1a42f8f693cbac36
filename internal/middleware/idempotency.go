package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
	"github.com/guttosm/kitchen-receipt-service/internal/metrics"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the default lifetime of a stored response.
	IdempotencyKeyTTL = 5 * time.Minute
	// maxIdempotencyKeyLength bounds client-supplied keys.
	maxIdempotencyKeyLength = 255
)

// IdempotencyStore holds replayable responses. Stop ends its cleanup loop.
type IdempotencyStore struct {
	cache *idempotencyCache
}

// NewIdempotencyStore creates a store whose entries live for ttl.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return &IdempotencyStore{cache: newIdempotencyCache(ttl)}
}

// Stop ends the cleanup loop.
func (s *IdempotencyStore) Stop() {
	if s != nil {
		s.cache.Stop()
	}
}

// Idempotency replays the stored response for a repeated POST or PUT that
// carries the same Idempotency-Key, caller and body. A tablet that retries a
// receipt after a dropped connection gets the original receipt back instead
// of a second one. A retry that arrives while the first attempt is running
// gets 409. Only 2xx responses are stored.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, message).WithRequestID(GetRequestID(c)))
			return
		}

		cacheKey, err := generateCacheKey(key, c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		cached, busy := store.cache.begin(cacheKey)
		if cached != nil {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}
		if busy {
			metrics.RecordRejected(metrics.RejectIdempotencyConflict, "")
			message := i18n.GetTranslator().Translate(i18n.ErrKeyIdempotencyInFlight, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewError(dto.ErrCodeConflict, message).WithRequestID(GetRequestID(c)))
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		var stored *cachedResponse
		defer func() { store.cache.finish(cacheKey, stored) }()

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			stored = &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			}
		}
	}
}

// generateCacheKey hashes the idempotency key with the method, path, caller
// and body, so the same key reused for a different order is not replayed.
func generateCacheKey(idempotencyKey string, c *gin.Context) (string, error) {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, c.Request.Method, c.Request.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}
	if p := GetPrincipal(c); p != nil {
		hasher.Write([]byte(p.Subject))
	}
	hasher.Write([]byte{0})

	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// responseWriter tees the response body for storage.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
