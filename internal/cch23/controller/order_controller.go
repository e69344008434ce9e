package controller

import (
	"net/http"
	"strconv"

	"codehunt/internal/cch23/repository"
	"codehunt/internal/cch23/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// OrderController handles the gift order and region reports.
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Warmup answers with the result of a constant SQL query.
func (h *OrderController) Warmup(c *gin.Context) {
	v, err := h.orderService.Warmup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatInt(v, 10))
}

// ResetOrders drops all orders.
func (h *OrderController) ResetOrders(c *gin.Context) {
	if err := h.orderService.ResetOrders(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ResetAll drops all orders and regions.
func (h *OrderController) ResetAll(c *gin.Context) {
	if err := h.orderService.ResetAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// AddOrders stores the posted orders.
func (h *OrderController) AddOrders(c *gin.Context) {
	var orders []repository.Order
	if err := c.ShouldBindJSON(&orders); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid order list"))
		return
	}
	if err := h.orderService.AddOrders(c.Request.Context(), orders); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// AddRegions stores the posted regions.
func (h *OrderController) AddRegions(c *gin.Context) {
	var regions []repository.Region
	if err := c.ShouldBindJSON(&regions); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid region list"))
		return
	}
	if err := h.orderService.AddRegions(c.Request.Context(), regions); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Total sums the quantity of every order.
func (h *OrderController) Total(c *gin.Context) {
	total, err := h.orderService.Total(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, TotalResponse{Total: total})
}

// Popular names the most ordered gift.
func (h *OrderController) Popular(c *gin.Context) {
	gift, err := h.orderService.Popular(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, PopularResponse{Popular: gift})
}

// RegionTotals sums the orders per region.
func (h *OrderController) RegionTotals(c *gin.Context) {
	totals, err := h.orderService.RegionTotals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// TopGifts lists the top gifts of each region.
func (h *OrderController) TopGifts(c *gin.Context) {
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid limit"))
		return
	}
	top, err := h.orderService.TopGifts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, top)
}

// TotalResponse is the summed quantity of all orders.
type TotalResponse struct {
	Total int64 `json:"total"`
}

// PopularResponse names the most ordered gift, or null.
type PopularResponse struct {
	Popular *string `json:"popular"`
}
