package controller

import (
	"io"
	"net/http"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

const maxLockfileSize = 1 << 20

// DecorController renders the htmx tree decorations.
type DecorController struct{}

// NewDecorController creates a new DecorController.
func NewDecorController() *DecorController {
	return &DecorController{}
}

// Star lights the star.
func (h *DecorController) Star(c *gin.Context) {
	response.HTML(c, http.StatusOK, service.StarHTML)
}

// Present renders the next present color.
func (h *DecorController) Present(c *gin.Context) {
	html, err := service.Present(c.Param("color"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, html)
}

// Ornament renders a blinking ornament.
func (h *DecorController) Ornament(c *gin.Context) {
	html, err := service.Ornament(c.Param("state"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, html)
}

// Lockfile turns an uploaded Cargo.lock into sprinkles.
func (h *DecorController) Lockfile(c *gin.Context) {
	header, err := c.FormFile("lockfile")
	if err != nil {
		response.Error(c, pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "missing lockfile"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.InvalidParams))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxLockfileSize+1))
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.InvalidParams))
		return
	}
	if len(data) > maxLockfileSize {
		response.Error(c, pkgerrors.New(pkgerrors.PayloadTooLarge))
		return
	}
	html, err := service.Lockfile(data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, html)
}
