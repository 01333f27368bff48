package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
	"github.com/Effiong06/Agri-Naija-Centre/internal/web"
)

// ContactHandler handles the public contact form
type ContactHandler struct {
	page
	contact *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact *service.ContactService, renderer *web.Renderer, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		page:    page{renderer: renderer, logger: logger},
		contact: contact,
	}
}

// Form renders the contact page
func (h *ContactHandler) Form(c *gin.Context) {
	h.render(c, http.StatusOK, web.PageContact, pageData{"Form": service.ContactInput{}})
}

// Submit forwards a contact message to the editors
func (h *ContactHandler) Submit(c *gin.Context) {
	in := service.ContactInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	err := h.contact.SubmitContact(c.Request.Context(), in.Name, in.Email, in.Message)
	var verr *service.ValidationError
	switch {
	case err == nil:
		setFlash(c, FlashSuccess, "Message sent successfully!")
		c.Redirect(http.StatusFound, "/")
	case errors.As(err, &verr):
		setFlash(c, FlashDanger, "All fields are required.")
		c.Redirect(http.StatusFound, "/contact")
	case errors.Is(err, service.ErrDispatch):
		// the visitor keeps what they typed
		h.render(c, http.StatusOK, web.PageContact, pageData{
			"Form":  in,
			"Flash": &Flash{Category: FlashDanger, Message: "There was a problem sending your message."},
		})
	default:
		h.serverError(c, err)
	}
}
