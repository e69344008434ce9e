package controller

import (
	"net/http"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// SeekLocation is where the warmup redirect points.
const SeekLocation = "https://www.youtube.com/watch?v=9Gc4QTqslN4"

// PuzzleController serves the stateless cch24 puzzles.
type PuzzleController struct{}

// NewPuzzleController creates a new PuzzleController.
func NewPuzzleController() *PuzzleController {
	return &PuzzleController{}
}

// Hello answers the warmup health check.
func (h *PuzzleController) Hello(c *gin.Context) {
	response.Text(c, http.StatusOK, "Hello, bird!")
}

// Seek redirects to the warmup video.
func (h *PuzzleController) Seek(c *gin.Context) {
	c.Redirect(http.StatusFound, SeekLocation)
}

func route(c *gin.Context, first, second string, fn func(a, b string) (string, error)) {
	a, ok := c.GetQuery(first)
	if !ok {
		response.Error(c, pkgerrors.Newf(pkgerrors.InvalidParams, "missing %s", first))
		return
	}
	b, ok := c.GetQuery(second)
	if !ok {
		response.Error(c, pkgerrors.Newf(pkgerrors.InvalidParams, "missing %s", second))
		return
	}
	out, err := fn(a, b)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, out)
}

// Dest handles /2/dest?from=&key=.
func (h *PuzzleController) Dest(c *gin.Context) { route(c, "from", "key", service.Dest4) }

// Key handles /2/key?from=&to=.
func (h *PuzzleController) Key(c *gin.Context) { route(c, "from", "to", service.Key4) }

// DestV6 handles /2/v6/dest?from=&key=.
func (h *PuzzleController) DestV6(c *gin.Context) { route(c, "from", "key", service.Dest6) }

// KeyV6 handles /2/v6/key?from=&to=.
func (h *PuzzleController) KeyV6(c *gin.Context) { route(c, "from", "to", service.Key6) }

// Manifest lists the gift orders of a posted Cargo manifest.
func (h *PuzzleController) Manifest(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.InvalidParams))
		return
	}
	orders, err := service.ParseManifest(c.GetHeader("Content-Type"), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	response.Text(c, http.StatusOK, service.FormatOrders(orders))
}
