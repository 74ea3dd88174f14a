package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/response"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

// Scheduler is the part of schedule.Engine the handlers use.
type Scheduler interface {
	FindConflicts(ctx context.Context, q schedule.ConflictQuery) ([]schedule.Booking, error)
	FindFreeSlots(ctx context.Context, q schedule.FreeSlotQuery) ([]schedule.Slot, error)
}

type Handler struct {
	scheduler Scheduler
}

func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// Conflicts lists the hearings a proposed interval would overlap.
func (h *Handler) Conflicts(c *gin.Context) {
	var req ConflictQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	q, err := req.ToQuery()
	if err != nil {
		response.Fail(c, err)
		return
	}

	conflicts, err := h.scheduler.FindConflicts(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}

	message := "no conflicts"
	if len(conflicts) > 0 {
		message = fmt.Sprintf("%d conflict(s) found", len(conflicts))
	}
	response.List(c, NewConflictResponses(conflicts), message)
}

// FreeSlots runs a full free-slot search described by the JSON body.
func (h *Handler) FreeSlots(c *gin.Context) {
	var req FreeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	q, err := req.ToQuery()
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondSlots(c, q)
}

// QuickFreeSlots is a GET search with the common defaults filled in.
func (h *Handler) QuickFreeSlots(c *gin.Context) {
	var req QuickFreeSlotRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	q, err := req.ToQuery()
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondSlots(c, q)
}

func (h *Handler) respondSlots(c *gin.Context, q schedule.FreeSlotQuery) {
	slots, err := h.scheduler.FindFreeSlots(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	response.List(c, items, fmt.Sprintf("%d free slot(s) found", len(items)))
}
