package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/response"
	"github.com/nekogravitycat/hearing-scheduler/internal/venue"
)

type VenueHandler struct {
	service venue.Service
}

func NewHandler(service venue.Service) *VenueHandler {
	return &VenueHandler{service: service}
}

// List retrieves every venue, optionally filtered by keyword or district.
func (h *VenueHandler) List(c *gin.Context) {
	var req ListVenuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	filter := req.ToFilter()
	venues, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}
	response.Page(c, items, filter.Page, filter.PageSize, total, "")
}

func (h *VenueHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewVenueResponse(v), "")
}

func (h *VenueHandler) Create(c *gin.Context) {
	var body CreateVenueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req, err := body.ToServiceRequest()
	if err != nil {
		response.Fail(c, err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, NewVenueResponse(v), "venue created")
}

func (h *VenueHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}

	var body UpdateVenueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req, err := body.ToServiceRequest()
	if err != nil {
		response.Fail(c, err)
		return
	}

	v, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewVenueResponse(v), "venue updated")
}

func (h *VenueHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
