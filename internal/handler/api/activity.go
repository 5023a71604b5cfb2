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

type ActivityHandler struct {
	cmds commands.ActivityCommands
	q    queries.ActivityQueries
}

func NewActivityHandler(cmds commands.ActivityCommands, q queries.ActivityQueries) *ActivityHandler {
	return &ActivityHandler{cmds: cmds, q: q}
}

// @Summary Create activity
// @Description Create a draft activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ActivityRequest true "Activity"
// @Success 201 {object} resdto.ActivityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req reqdto.ActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.cmds.Create(c.Request.Context(), req.ToInfo())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Header("Location", "/api/activities/"+a.ID().String())
	c.JSON(http.StatusCreated, resdto.FromActivityView(queries.ToActivityView(a)))
}

// @Summary Get activity
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} resdto.ActivityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/activities/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromActivityView(view))
}

// @Summary List activities
// @Description Newest first, optionally filtered by status
// @Tags activities
// @Produce json
// @Param status query string false "draft, published or archived"
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[resdto.ActivityResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	var q reqdto.ListActivitiesQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := queries.ActivityListFilter{Status: q.Status, Page: queries.Page{Limit: q.Limit, Offset: q.Offset}}
	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ListResponse[resdto.ActivityResponse]{
		Items:  resdto.FromActivityViews(views),
		Limit:  queries.ValidateLimit(q.Limit),
		Offset: q.Offset,
	})
}

// @Summary Update activity
// @Description Replace name, category, location, description and price range
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param request body reqdto.ActivityRequest true "Activity"
// @Success 200 {object} resdto.ActivityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/activities/{id} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.cmds.UpdateBasicInfo(c.Request.Context(), id, req.ToInfo())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromActivityView(queries.ToActivityView(a)))
}

// @Summary Publish activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} resdto.ActivityResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/activities/{id}/publish [post]
func (h *ActivityHandler) Publish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.cmds.Publish(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromActivityView(queries.ToActivityView(a)))
}

// @Summary Archive activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} resdto.ActivityResponse
// @Failure 404 {object} httperr.Response
// @Router /api/activities/{id}/archive [post]
func (h *ActivityHandler) Archive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.cmds.Archive(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromActivityView(queries.ToActivityView(a)))
}
