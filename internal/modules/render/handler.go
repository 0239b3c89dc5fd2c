package render

import (
	"errors"

	"github.com/dsp-forms/core/internal/middleware"
	"github.com/dsp-forms/core/internal/models"
	"github.com/dsp-forms/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes mounts the render endpoint. The group is expected to carry
// middleware.OptionalAuth so anonymous callers still get a plan.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/forms/:id/render", h.renderForm)
}

func (h *Handler) renderForm(c *gin.Context) {
	var f models.FormModel
	err := h.db.Where("id = ? AND is_public = ?", c.Param("id"), true).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundMsg(c, "form not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	authenticated := middleware.CurrentIdentity(c) != nil
	response.OK(c, BuildPlan(&f, authenticated))
}
