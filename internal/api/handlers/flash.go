package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlashCookie carries a one-shot notice across a redirect
const FlashCookie = "flash"

// Flash notice categories
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-shot notice shown on the next rendered page
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

func setFlash(c *gin.Context, category, message string) {
	data, err := json.Marshal(Flash{Category: category, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, base64.RawURLEncoding.EncodeToString(data), 0, "/", "", false, true)
}

func hasFlash(c *gin.Context) bool {
	v, err := c.Cookie(FlashCookie)
	return err == nil && v != ""
}

// takeFlash reads and clears the pending notice. A malformed cookie is
// cleared and ignored.
func takeFlash(c *gin.Context) *Flash {
	v, err := c.Cookie(FlashCookie)
	if err != nil || v == "" {
		return nil
	}
	c.SetCookie(FlashCookie, "", -1, "/", "", false, true)

	data, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil || f.Message == "" {
		return nil
	}
	switch f.Category {
	case FlashSuccess, FlashDanger, FlashInfo:
	default:
		f.Category = FlashInfo
	}
	return &f
}
