package controller

import (
	"net/http"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// QuoteController handles the quote book endpoints.
type QuoteController struct {
	svc *service.QuoteService
}

// NewQuoteController creates a new QuoteController.
func NewQuoteController(svc *service.QuoteService) *QuoteController {
	return &QuoteController{svc: svc}
}

// Reset removes every quote.
func (h *QuoteController) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Draft stores a new quote.
func (h *QuoteController) Draft(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid quote"))
		return
	}
	q, err := h.svc.Draft(c.Request.Context(), *req.Author, *req.Quote)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, q)
}

// Cite returns one quote.
func (h *QuoteController) Cite(c *gin.Context) {
	q, err := h.svc.Cite(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, q)
}

// Undo replaces a quote and bumps its version.
func (h *QuoteController) Undo(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid quote"))
		return
	}
	q, err := h.svc.Undo(c.Request.Context(), c.Param("id"), *req.Author, *req.Quote)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, q)
}

// Remove deletes a quote and returns it.
func (h *QuoteController) Remove(c *gin.Context) {
	q, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, q)
}

// List returns a page of quotes.
func (h *QuoteController) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// QuoteRequest represents the body of draft and undo requests
type QuoteRequest struct {
	Author *string `json:"author" binding:"required"`
	Quote  *string `json:"quote" binding:"required"`
}
