package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ShortLinkController resolves short link tokens
type ShortLinkController struct {
	links services.ShortLinkService
}

// NewShortLinkController creates a new ShortLinkController
func NewShortLinkController(links services.ShortLinkService) *ShortLinkController {
	return &ShortLinkController{links: links}
}

// Redirect godoc
// @Summary Follow a short link
// @Tags shortlinks
// @Param token path string true "Short link token"
// @Success 302
// @Failure 404 {object} models.APIError
// @Router /s/{token} [get]
func (sc *ShortLinkController) Redirect(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "short link not found"))
		return
	}
	target, err := sc.links.Resolve(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}
