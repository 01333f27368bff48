// Package handlers provides HTTP request handlers for the public site and the
// management API of the Agri-Naija Centre CMS.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/web"
)

const htmlContentType = "text/html; charset=utf-8"

// pageData is the view model shared by every HTML page
type pageData map[string]any

// page renders HTML views, consuming any pending flash notice
type page struct {
	renderer *web.Renderer
	logger   *zap.Logger
}

func (p *page) render(c *gin.Context, status int, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["Flash"]; !ok {
		if f := takeFlash(c); f != nil {
			data["Flash"] = f
		}
	}

	body, err := p.renderer.RenderBytes(name, data)
	if err != nil {
		p.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal server error"))
		return
	}
	c.Data(status, htmlContentType, body)
}

func (p *page) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, web.PageNotFound, nil)
}

func (p *page) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	p.render(c, http.StatusInternalServerError, web.PageError, nil)
}
