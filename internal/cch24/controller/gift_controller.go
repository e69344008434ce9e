package controller

import (
	"net/http"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// GiftController wraps gifts into signed cookies and checks Santa's tokens.
type GiftController struct {
	wrapper *service.GiftWrapper
}

// NewGiftController creates a new GiftController.
func NewGiftController(wrapper *service.GiftWrapper) *GiftController {
	return &GiftController{wrapper: wrapper}
}

// Wrap signs the posted JSON and returns it in the gift cookie.
func (h *GiftController) Wrap(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.InvalidParams))
		return
	}
	token, err := h.wrapper.Wrap(body)
	if err != nil {
		response.Error(c, err)
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: service.GiftCookie, Value: token, Path: "/"})
	c.Status(http.StatusOK)
}

// Unwrap returns the payload of the gift cookie.
func (h *GiftController) Unwrap(c *gin.Context) {
	token, err := c.Cookie(service.GiftCookie)
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.TokenInvalid))
		return
	}
	payload, err := h.wrapper.Unwrap(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, payload)
}

// Decode verifies a token signed by Santa and returns its claims.
func (h *GiftController) Decode(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, pkgerrors.Wrap(err, pkgerrors.InvalidParams))
		return
	}
	claims, err := h.wrapper.Decode(string(body))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, claims)
}
