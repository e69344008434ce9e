package controller

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"codehunt/internal/cch23/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// PuzzleController serves the stateless cch23 puzzles.
type PuzzleController struct{}

// NewPuzzleController creates a new PuzzleController.
func NewPuzzleController() *PuzzleController {
	return &PuzzleController{}
}

// Hello answers the warmup health check.
func (h *PuzzleController) Hello(c *gin.Context) {
	response.Text(c, http.StatusOK, "Hello, world!")
}

// Fail always answers with an internal server error.
func (h *PuzzleController) Fail(c *gin.Context) {
	response.Error(c, pkgerrors.New(pkgerrors.InternalServerError))
}

// CubeBits handles /1/*ids.
func (h *PuzzleController) CubeBits(c *gin.Context) {
	parts := strings.Split(strings.Trim(c.Param("ids"), "/"), "/")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			response.Error(c, pkgerrors.Newf(pkgerrors.InvalidParams, "invalid packet id %q", p))
			return
		}
		ids = append(ids, id)
	}
	cube, err := service.CubeBits(ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatInt(cube, 10))
}

// Strength sums the strength of the posted team.
func (h *PuzzleController) Strength(c *gin.Context) {
	var team []service.Reindeer
	if err := c.ShouldBindJSON(&team); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid reindeer list"))
		return
	}
	response.Text(c, http.StatusOK, strconv.FormatInt(service.TotalStrength(team), 10))
}

// Contest crowns the category winners of the posted team.
func (h *PuzzleController) Contest(c *gin.Context) {
	var team []service.Reindeer
	if err := c.ShouldBindJSON(&team); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid reindeer list"))
		return
	}
	result, err := service.Contest(team)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "invalid %s %q", name, raw)
	}
	return &v, nil
}

// SliceNames pages and splits the posted names.
func (h *PuzzleController) SliceNames(c *gin.Context) {
	var opts service.SliceOptions
	var err error
	for name, dst := range map[string]**int{"offset": &opts.Offset, "limit": &opts.Limit, "split": &opts.Split} {
		if *dst, err = optionalInt(c, name); err != nil {
			response.Error(c, err)
			return
		}
	}
	var names []string
	if err := c.ShouldBindJSON(&names); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid name list"))
		return
	}
	if names == nil {
		names = []string{}
	}
	sliced, err := service.SliceNames(names, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sliced)
}

// CountElves counts elves and shelves in the posted text.
func (h *PuzzleController) CountElves(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, pkgerrors.BadRequest("Unreadable body"))
		return
	}
	response.Success(c, service.CountElves(string(body)))
}

func recipeCookie(c *gin.Context) ([]byte, error) {
	raw, err := c.Cookie("recipe")
	if err != nil {
		return nil, pkgerrors.BadRequest("Missing recipe cookie")
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(raw); err == nil {
			return data, nil
		}
	}
	return nil, pkgerrors.BadRequest("Recipe cookie is not base64")
}

// DecodeRecipe echoes the JSON document stored in the recipe cookie.
func (h *PuzzleController) DecodeRecipe(c *gin.Context) {
	data, err := recipeCookie(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !json.Valid(data) {
		response.Error(c, pkgerrors.BadRequest("Recipe is not JSON"))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// Bake bakes the recipe in the cookie with its pantry.
func (h *PuzzleController) Bake(c *gin.Context) {
	data, err := recipeCookie(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req BakeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid recipe"))
		return
	}
	response.Success(c, service.Bake(req.Recipe, req.Pantry))
}

// UnsafePage renders the posted content verbatim.
func (h *PuzzleController) UnsafePage(c *gin.Context) {
	h.page(c, false)
}

// SafePage renders the posted content escaped.
func (h *PuzzleController) SafePage(c *gin.Context) {
	h.page(c, true)
}

func (h *PuzzleController) page(c *gin.Context, safe bool) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgerrors.BadRequest("Invalid page content"))
		return
	}
	response.HTML(c, http.StatusOK, service.RenderPage(req.Content, safe))
}

// Nice judges a password with the classic rules.
func (h *PuzzleController) Nice(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, http.StatusBadRequest, VerdictResponse{Result: "naughty"})
		return
	}
	if !service.IsNice(req.Input) {
		response.JSON(c, http.StatusBadRequest, VerdictResponse{Result: "naughty"})
		return
	}
	response.Success(c, VerdictResponse{Result: "nice"})
}

// Game judges a password with the password game rules.
func (h *PuzzleController) Game(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, http.StatusBadRequest, VerdictResponse{Result: "naughty", Reason: "invalid request"})
		return
	}
	verdict := service.JudgeGame(req.Input)
	result := "naughty"
	if verdict.Nice {
		result = "nice"
	}
	response.JSON(c, verdict.Status, VerdictResponse{Result: result, Reason: verdict.Reason})
}

// Integers finds the number without a partner and wraps that many presents.
func (h *PuzzleController) Integers(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, pkgerrors.BadRequest("Unreadable body"))
		return
	}
	n, err := service.LonelyInteger(string(body))
	if err != nil {
		response.Error(c, err)
		return
	}
	presents, err := service.Presents(n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, presents)
}

// Rocket plans the shortest portal route across the posted star map.
func (h *PuzzleController) Rocket(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, pkgerrors.BadRequest("Unreadable body"))
		return
	}
	stars, err := service.ParseStarMap(string(body))
	if err != nil {
		response.Error(c, err)
		return
	}
	portals, distance, err := stars.Route()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, service.FormatRoute(portals, distance))
}

// BakeRequest is the document stored in the recipe cookie.
type BakeRequest struct {
	Recipe map[string]int64 `json:"recipe"`
	Pantry map[string]int64 `json:"pantry"`
}

// PageRequest carries the content of a day 14 page.
type PageRequest struct {
	Content string `json:"content"`
}

// PasswordRequest carries a password to judge.
type PasswordRequest struct {
	Input string `json:"input"`
}

// VerdictResponse is the judgement of a password.
type VerdictResponse struct {
	Result string `json:"result"`
	Reason string `json:"reason,omitempty"`
}
