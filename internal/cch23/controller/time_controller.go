package controller

import (
	"net/http"
	"strconv"

	"codehunt/internal/cch23/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// TimeController handles the packet timekeeper and ulid endpoints.
type TimeController struct {
	keeper *service.TimeKeeper
}

// NewTimeController creates a new TimeController.
func NewTimeController(keeper *service.TimeKeeper) *TimeController {
	return &TimeController{keeper: keeper}
}

// Save remembers when a packet was seen.
func (h *TimeController) Save(c *gin.Context) {
	if err := h.keeper.Save(c.Request.Context(), c.Param("packet")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Load reports the seconds since a packet was saved.
func (h *TimeController) Load(c *gin.Context) {
	elapsed, err := h.keeper.Load(c.Request.Context(), c.Param("packet"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatInt(elapsed, 10))
}

// ULIDs converts ulids into uuids in reverse order.
func (h *TimeController) ULIDs(c *gin.Context) {
	var ulids []string
	if err := c.ShouldBindJSON(&ulids); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid ulid list"))
		return
	}
	uuids, err := service.ULIDsToUUIDs(ulids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, uuids)
}

// Weekday counts properties of the ulid timestamps.
func (h *TimeController) Weekday(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid weekday"))
		return
	}
	var ulids []string
	if err := c.ShouldBindJSON(&ulids); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid ulid list"))
		return
	}
	stats, err := h.keeper.CountULIDs(ulids, weekday)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
