package submission

import (
	"errors"

	"github.com/dsp-forms/core/internal/middleware"
	"github.com/dsp-forms/core/internal/models"
	"github.com/dsp-forms/core/internal/pkg/pagination"
	"github.com/dsp-forms/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the submit endpoint; the group carries
// OptionalAuth so anonymous submissions reach the identity checks.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/forms/:id/submissions", h.submit)
}

// RegisterUserRoutes mounts the signed-in "my submissions" endpoint.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.listMine)
}

// RegisterAdminRoutes mounts the review-queue endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.adminList)
	rg.PATCH("/submissions/:id/status", h.updateStatus)
}

type submitDTO struct {
	Data models.ValueMap `json:"data" binding:"required"`
}

type statusDTO struct {
	Status models.SubmissionStatus `json:"status" binding:"required"`
}

func (h *Handler) submit(c *gin.Context) {
	var dto submitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	who := Submitter{}
	if ident := middleware.CurrentIdentity(c); ident != nil {
		who = Submitter{
			UserID:        ident.ID,
			Name:          ident.Name,
			Email:         ident.Email,
			Authenticated: true,
		}
	}

	sub, err := h.svc.Submit(c.Param("id"), dto.Data, who)
	if err != nil {
		writeSubmitError(c, err)
		return
	}
	response.Created(c, sub)
}

func (h *Handler) listMine(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		response.Unauthorized(c)
		return
	}
	subs, err := h.svc.ListMine(ident.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, subs)
}

func (h *Handler) adminList(c *gin.Context) {
	subs, meta, err := h.svc.ListAll(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, meta)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var dto statusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.svc.UpdateStatus(c.Param("id"), dto.Status)
	if err != nil {
		var ve *validationError
		switch {
		case errors.Is(err, errSubmissionMissing):
			response.NotFoundMsg(c, err.Error())
		case errors.As(err, &ve):
			response.UnprocessableEntity(c, ve.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, sub)
}

func writeSubmitError(c *gin.Context, err error) {
	var ve *validationError
	switch {
	case errors.Is(err, errFormMissing):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, errAccessDenied):
		response.ForbiddenMsg(c, err.Error())
	case errors.As(err, &ve):
		response.UnprocessableEntity(c, ve.Error())
	default:
		response.InternalError(c, err)
	}
}
