package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ticketing-engine/internal/handler/httperr"
	"ticketing-engine/internal/infra/idempotency"
	"ticketing-engine/internal/pkg/clock"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

var (
	errKeyTooLong  = errors.New("idempotency key too long")
	errKeyInFlight = errors.New("idempotency key in flight")
	errKeyReused   = errors.New("idempotency key reused with different request")
)

// IdempotencyStore is satisfied by *idempotency.RedisStore.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key, requestHash string, now time.Time) (*idempotency.Record, bool, error)
	Complete(ctx context.Context, key string, rec idempotency.Record) error
	Release(ctx context.Context, key string) error
}

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

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Requests without the header, or with a nil store, pass straight through.
// Store failures fail open: the request runs as if no key was sent.
func Idempotency(store IdempotencyStore, clk clock.Clock, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			httperr.AbortWithError(c, http.StatusBadRequest, errKeyTooLong, httperr.CodeBadRequest,
				"Idempotency-Key must be at most 255 characters", nil)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Failed to read request body", nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		scope := "anonymous"
		if userID, ok := GetUserID(c); ok {
			scope = userID.String()
		}
		// Keys are per caller; two users may pick the same value.
		storeKey := scope + ":" + key
		hash := requestHash(c.Request.Method, c.Request.URL.Path, scope, body)
		ctx := c.Request.Context()

		existing, acquired, err := store.Reserve(ctx, storeKey, hash, clk.Now())
		if err != nil {
			logger.Warn("idempotency store unavailable, continuing without it", "error", err.Error())
			c.Next()
			return
		}
		if !acquired {
			replay(c, existing, hash)
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		// Background so a cancelled client still settles the key.
		settleCtx := context.WithoutCancel(ctx)
		status := writer.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(settleCtx, storeKey); err != nil {
				logger.Warn("failed to release idempotency key", "key", key, "error", err.Error())
			}
			return
		}

		completedAt := clk.Now()
		rec := idempotency.Record{
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: writer.body.Bytes(),
			CompletedAt:  &completedAt,
		}
		if err := store.Complete(settleCtx, storeKey, rec); err != nil {
			logger.Warn("failed to store idempotent response", "key", key, "error", err.Error())
		}
	}
}

func replay(c *gin.Context, rec *idempotency.Record, hash string) {
	if rec.RequestHash != hash {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, errKeyReused, httperr.CodeConflict,
			"Idempotency-Key was already used with a different request", nil)
		return
	}
	if rec.Status != idempotency.StatusCompleted {
		httperr.AbortWithError(c, http.StatusConflict, errKeyInFlight, httperr.CodeConflict,
			"A request with this Idempotency-Key is still being processed", nil)
		return
	}
	c.Header(ReplayedHeader, "true")
	c.Data(rec.ResponseCode, "application/json; charset=utf-8", rec.ResponseBody)
	c.Abort()
}

func requestHash(method, path, scope string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(scope))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
