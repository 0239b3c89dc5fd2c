package export

import (
	"errors"
	"fmt"
	"net/http"

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

// RegisterPublicRoutes mounts the blank-template download; the group carries
// OptionalAuth so sign-in-only forms can be gated.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/forms/:id/export/blank", h.exportBlank)
}

// RegisterUserRoutes mounts the filled-submission download for signed-in
// callers.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions/:id/export", h.exportSubmission)
}

func (h *Handler) exportBlank(c *gin.Context) {
	var form models.FormModel
	err := h.db.Where("id = ? AND is_public = ?", c.Param("id"), true).First(&form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundMsg(c, "form not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if form.RequiresAuth && middleware.CurrentIdentity(c) == nil {
		response.ForbiddenMsg(c, "this form requires you to sign in")
		return
	}

	h.send(c, LayoutBlank(&form), BlankFileName(form.Title))
}

func (h *Handler) exportSubmission(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		response.Unauthorized(c)
		return
	}

	var sub models.SubmissionModel
	err := h.db.Where("id = ?", c.Param("id")).Preload("Form").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundMsg(c, "submission not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	owner := sub.UserID != nil && *sub.UserID == ident.ID
	if !owner && !ident.IsAdmin {
		response.Forbidden(c)
		return
	}

	title := "Form Submission"
	if sub.Form != nil {
		title = sub.Form.Title
	}

	var plan []Instruction
	var name string
	switch {
	case c.Query("variant") == "filled" && sub.Form != nil:
		plan = LayoutFilled(sub.Form, sub.Data)
		name = FilledFileName(title)
	case ident.IsAdmin && !owner:
		plan = LayoutSubmission(&sub)
		name = SubmissionFileName(sub.ID)
	default:
		plan = LayoutOwnSubmission(&sub)
		name = OwnSubmissionFileName(title)
	}

	h.send(c, plan, name)
}

func (h *Handler) send(c *gin.Context, plan []Instruction, name string) {
	pdf, err := Render(plan)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
