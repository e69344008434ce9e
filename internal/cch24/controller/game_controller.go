package controller

import (
	"net/http"
	"strconv"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// GameController plays cookies and milk on the shared board.
type GameController struct {
	game *service.Game
}

// NewGameController creates a new GameController.
func NewGameController(game *service.Game) *GameController {
	return &GameController{game: game}
}

// Board prints the current board.
func (h *GameController) Board(c *gin.Context) {
	response.Text(c, http.StatusOK, h.game.Board())
}

// Reset empties the board.
func (h *GameController) Reset(c *gin.Context) {
	response.Text(c, http.StatusOK, h.game.Reset())
}

// Place drops a team's tile into a column.
func (h *GameController) Place(c *gin.Context) {
	tile, err := service.ParseTeam(c.Param("team"))
	if err != nil {
		response.Error(c, err)
		return
	}
	column, err := strconv.Atoi(c.Param("column"))
	if err != nil {
		response.Error(c, pkgerrors.Newf(pkgerrors.InvalidParams, "invalid column %q", c.Param("column")))
		return
	}
	board, err := h.game.Place(tile, column)
	if err != nil {
		if board == "" {
			response.Error(c, err)
			return
		}
		response.ErrorWithBody(c, pkgerrors.GetCode(err), board)
		return
	}
	response.Text(c, http.StatusOK, board)
}

// RandomBoard fills the board from the seeded generator.
func (h *GameController) RandomBoard(c *gin.Context) {
	response.Text(c, http.StatusOK, h.game.RandomBoard())
}
