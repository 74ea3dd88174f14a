package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hearing-scheduler/internal/hearing"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/response"
	schedHttp "github.com/nekogravitycat/hearing-scheduler/internal/schedule/http"
)

type Handler struct {
	service hearing.Service
}

func NewHandler(service hearing.Service) *Handler {
	return &Handler{service: service}
}

// fail writes err, attaching the conflicting hearings when a write was
// rejected for overlapping them.
func fail(c *gin.Context, err error) {
	var ce *hearing.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, response.Envelope{
			Success: false,
			Message: ce.Error(),
			Dados:   schedHttp.NewConflictResponses(ce.Conflicts),
		})
		return
	}
	response.Fail(c, err)
}

func (h *Handler) List(c *gin.Context) {
	var req ListHearingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		response.Fail(c, err)
		return
	}

	hearings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items := make([]HearingResponse, len(hearings))
	for i, hr := range hearings {
		items[i] = NewHearingResponse(hr)
	}
	response.Page(c, items, filter.Page, filter.PageSize, total, "")
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid hearing id")
		return
	}

	hr, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewHearingResponse(hr), "")
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateHearingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req, err := body.ToServiceRequest()
	if err != nil {
		response.Fail(c, err)
		return
	}

	hr, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, NewHearingResponse(hr), "hearing scheduled")
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid hearing id")
		return
	}

	var body UpdateHearingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req, err := body.ToServiceRequest()
	if err != nil {
		response.Fail(c, err)
		return
	}

	hr, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewHearingResponse(hr), "hearing updated")
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid hearing id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
