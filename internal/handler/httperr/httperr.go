package httperr

import (
	"net/http"
	"strconv"

	"ticketing-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	CodeBadRequest   = "BadRequest"
	CodeUnauthorized = "Unauthorized"
	CodeForbidden    = "Forbidden"
	CodeInternal     = "InternalError"
	CodeConflict     = "Conflict"
)

// RetryAfterSeconds is advertised on 503 responses for transient storage faults.
const RetryAfterSeconds = 1

type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

func NewResponse(status int, code, msg string) Response {
	return Response{Status: status, Error: Body{Code: code, Message: msg}}
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, code, msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithKind resolves err to its errs.Kind and writes the matching status.
// Errors outside the taxonomy become a 500 without leaking their text.
func AbortWithKind(c *gin.Context, err error) {
	kind, ok := errs.KindOf(err)
	if !ok {
		AbortWithError(c, http.StatusInternalServerError, err, CodeInternal, "Internal server error", nil)
		return
	}
	msg := kind.Message()
	if kind == errs.ErrValidation {
		// the wrapped message carries the field detail
		msg = err.Error()
	}
	AbortWithError(c, StatusOf(kind), err, kind.Code(), msg, nil)
}

func StatusOf(kind *errs.Kind) int {
	switch kind {
	case errs.ErrActivityNotFound, errs.ErrTimeslotNotFound, errs.ErrOrderNotFound,
		errs.ErrRefundNotFound, errs.ErrSeatNotFound, errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrActivityUnavailable, errs.ErrTimeslotUnavailable, errs.ErrCapacityExceeded,
		errs.ErrSeatUnavailable, errs.ErrInvalidOrderState, errs.ErrInvalidRefundState,
		errs.ErrRefundExceedsTotal, errs.ErrInvalidSeatTransition, errs.ErrInvalidActivityState:
		return http.StatusConflict
	case errs.ErrTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}
