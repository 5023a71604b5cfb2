package api

import (
	"context"
	"net/http"

	"ticketing-engine/internal/domain/refund"
	reqdto "ticketing-engine/internal/handler/dto/request"
	resdto "ticketing-engine/internal/handler/dto/response"
	"ticketing-engine/internal/handler/httperr"
	"ticketing-engine/internal/usecase/commands"
	"ticketing-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RefundHandler struct {
	cmds commands.RefundCommands
	q    queries.RefundQueries
}

func NewRefundHandler(cmds commands.RefundCommands, q queries.RefundQueries) *RefundHandler {
	return &RefundHandler{cmds: cmds, q: q}
}

// @Summary Request refund
// @Tags refunds
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.RequestRefundRequest true "Refund"
// @Success 201 {object} resdto.RefundResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/orders/{id}/refunds [post]
func (h *RefundHandler) Request(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RequestRefundRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.cmds.RequestRefund(c.Request.Context(), orderID, req.Amount, req.Reason)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Header("Location", "/api/refunds/"+r.ID().String())
	c.JSON(http.StatusCreated, resdto.FromRefundView(queries.ToRefundView(r)))
}

// @Summary List refunds of an order
// @Tags refunds
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} resdto.RefundResponse
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id}/refunds [get]
func (h *RefundHandler) ListByOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundViews(views))
}

// @Summary List refunds
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param order_id query string false "Order ID"
// @Param status query string false "requested, approved, rejected or completed"
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[resdto.RefundResponse]
// @Router /api/refunds [get]
func (h *RefundHandler) List(c *gin.Context) {
	var q reqdto.ListRefundsQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := queries.RefundListFilter{
		OrderID: q.OrderUUID(),
		Status:  q.Status,
		Page:    queries.Page{Limit: q.Limit, Offset: q.Offset},
	}
	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ListResponse[resdto.RefundResponse]{
		Items:  resdto.FromRefundViews(views),
		Limit:  queries.ValidateLimit(q.Limit),
		Offset: q.Offset,
	})
}

// @Summary Get refund
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund ID"
// @Success 200 {object} resdto.RefundResponse
// @Failure 404 {object} httperr.Response
// @Router /api/refunds/{id} [get]
func (h *RefundHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundView(view))
}

// @Summary Approve refund
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund ID"
// @Success 200 {object} resdto.RefundResponse
// @Failure 409 {object} httperr.Response
// @Router /api/refunds/{id}/approve [post]
func (h *RefundHandler) Approve(c *gin.Context) {
	h.transition(c, h.cmds.ApproveRefund)
}

// @Summary Reject refund
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund ID"
// @Success 200 {object} resdto.RefundResponse
// @Failure 409 {object} httperr.Response
// @Router /api/refunds/{id}/reject [post]
func (h *RefundHandler) Reject(c *gin.Context) {
	h.transition(c, h.cmds.RejectRefund)
}

// @Summary Complete refund
// @Description Apply an approved refund to its order
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund ID"
// @Success 200 {object} resdto.RefundResponse
// @Failure 409 {object} httperr.Response
// @Router /api/refunds/{id}/complete [post]
func (h *RefundHandler) Complete(c *gin.Context) {
	h.transition(c, h.cmds.CompleteRefund)
}

func (h *RefundHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*refund.Refund, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := fn(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundView(queries.ToRefundView(r)))
}
