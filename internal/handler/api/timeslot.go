package api

import (
	"net/http"

	reqdto "ticketing-engine/internal/handler/dto/request"
	resdto "ticketing-engine/internal/handler/dto/response"
	"ticketing-engine/internal/handler/httperr"
	"ticketing-engine/internal/usecase/commands"
	"ticketing-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TimeslotHandler struct {
	cmds commands.TimeslotCommands
	q    queries.TimeslotQueries
}

func NewTimeslotHandler(cmds commands.TimeslotCommands, q queries.TimeslotQueries) *TimeslotHandler {
	return &TimeslotHandler{cmds: cmds, q: q}
}

// @Summary Create timeslot
// @Description Create an on-sale timeslot under an activity; omit capacity for seat-only sales
// @Tags timeslots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param request body reqdto.CreateTimeslotRequest true "Timeslot"
// @Success 201 {object} resdto.TimeslotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/activities/{id}/timeslots [post]
func (h *TimeslotHandler) Create(c *gin.Context) {
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateTimeslotRequest
	if !bindJSON(c, &req) {
		return
	}
	ts, err := h.cmds.Create(c.Request.Context(), req.ToCommand(activityID))
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Header("Location", "/api/timeslots/"+ts.ID().String())
	c.JSON(http.StatusCreated, resdto.FromTimeslotView(queries.ToTimeslotView(ts)))
}

// @Summary List timeslots of an activity
// @Tags timeslots
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {array} resdto.TimeslotResponse
// @Router /api/activities/{id}/timeslots [get]
func (h *TimeslotHandler) ListByActivity(c *gin.Context) {
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ListByActivity(c.Request.Context(), activityID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTimeslotViews(views))
}

// @Summary Get timeslot
// @Tags timeslots
// @Produce json
// @Param id path string true "Timeslot ID"
// @Success 200 {object} resdto.TimeslotResponse
// @Failure 404 {object} httperr.Response
// @Router /api/timeslots/{id} [get]
func (h *TimeslotHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTimeslotView(view))
}

// @Summary Update timeslot
// @Description Move the window and change the base price
// @Tags timeslots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timeslot ID"
// @Param request body reqdto.UpdateTimeslotRequest true "Window and price"
// @Success 200 {object} resdto.TimeslotResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/timeslots/{id} [put]
func (h *TimeslotHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateTimeslotRequest
	if !bindJSON(c, &req) {
		return
	}
	ts, err := h.cmds.Reschedule(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTimeslotView(queries.ToTimeslotView(ts)))
}

// @Summary Set timeslot capacity
// @Description Remaining capacity shifts by the delta and is clamped at zero
// @Tags timeslots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timeslot ID"
// @Param request body reqdto.SetCapacityRequest true "Capacity"
// @Success 200 {object} resdto.TimeslotResponse
// @Router /api/timeslots/{id}/capacity [put]
func (h *TimeslotHandler) SetCapacity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetCapacityRequest
	if !bindJSON(c, &req) {
		return
	}
	ts, err := h.cmds.SetCapacity(c.Request.Context(), id, *req.Capacity)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTimeslotView(queries.ToTimeslotView(ts)))
}

// @Summary Change timeslot status
// @Tags timeslots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timeslot ID"
// @Param request body reqdto.ChangeTimeslotStatusRequest true "Status"
// @Success 200 {object} resdto.TimeslotResponse
// @Router /api/timeslots/{id}/status [put]
func (h *TimeslotHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ChangeTimeslotStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	ts, err := h.cmds.ChangeStatus(c.Request.Context(), id, req.ToStatus())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTimeslotView(queries.ToTimeslotView(ts)))
}

// @Summary Create seats
// @Description Bulk-create available seats for a timeslot
// @Tags seats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timeslot ID"
// @Param request body reqdto.CreateSeatsRequest true "Seats"
// @Success 201 {array} resdto.SeatResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/timeslots/{id}/seats [post]
func (h *TimeslotHandler) CreateSeats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateSeatsRequest
	if !bindJSON(c, &req) {
		return
	}
	seats, err := h.cmds.CreateSeats(c.Request.Context(), id, req.ToInputs())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	views := make([]*queries.SeatView, len(seats))
	for i, s := range seats {
		views[i] = queries.ToSeatView(s)
	}
	c.JSON(http.StatusCreated, resdto.FromSeatViews(views))
}

// @Summary List seats
// @Tags seats
// @Produce json
// @Param id path string true "Timeslot ID"
// @Success 200 {array} resdto.SeatResponse
// @Router /api/timeslots/{id}/seats [get]
func (h *TimeslotHandler) ListSeats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ListSeats(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSeatViews(views))
}
