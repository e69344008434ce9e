package controller

import (
	"net/http"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

const milkWithdrawn = "Milk withdrawn\n"

// MilkController hands out milk from the shared bucket.
type MilkController struct {
	bucket *service.MilkBucket
}

// NewMilkController creates a new MilkController.
func NewMilkController(bucket *service.MilkBucket) *MilkController {
	return &MilkController{bucket: bucket}
}

// Milk withdraws one unit. JSON requests also get a unit conversion.
func (h *MilkController) Milk(c *gin.Context) {
	if err := h.bucket.Withdraw(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	if c.ContentType() != gin.MIMEJSON {
		response.Text(c, http.StatusOK, milkWithdrawn)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.InvalidParams))
		return
	}
	converted, err := service.ConvertMilk(body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, converted)
}

// Refill fills the bucket.
func (h *MilkController) Refill(c *gin.Context) {
	if err := h.bucket.Refill(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}
