package controller

import (
	"net/http"
	"strconv"

	"codehunt/internal/cch23/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// LookupController serves the puzzles backed by public APIs.
type LookupController struct {
	pokedex  *service.Pokedex
	geocoder *service.Geocoder
}

// NewLookupController creates a new LookupController.
func NewLookupController(pokedex *service.Pokedex, geocoder *service.Geocoder) *LookupController {
	return &LookupController{pokedex: pokedex, geocoder: geocoder}
}

func pokedexNumber(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, pkgerrors.Newf(pkgerrors.InvalidParams, "invalid pokedex number %q", c.Param("id"))
	}
	return id, nil
}

// Weight reports a pokemon's weight in kilograms.
func (h *LookupController) Weight(c *gin.Context) {
	id, err := pokedexNumber(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	weight, err := h.pokedex.Weight(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatFloat(weight, 'f', -1, 64))
}

// Drop reports a pokemon's momentum after falling down the chimney.
func (h *LookupController) Drop(c *gin.Context) {
	id, err := pokedexNumber(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	momentum, err := h.pokedex.Momentum(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatFloat(momentum, 'f', -1, 64))
}

// Coords reports the centre of an S2 cell.
func (h *LookupController) Coords(c *gin.Context) {
	cell, err := service.ParseCell(c.Param("binary"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, service.CellCoords(cell))
}

// Country names the country an S2 cell lies in.
func (h *LookupController) Country(c *gin.Context) {
	cell, err := service.ParseCell(c.Param("binary"))
	if err != nil {
		response.Error(c, err)
		return
	}
	name, err := h.geocoder.Country(c.Request.Context(), cell)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, name)
}
