package form

import (
	"errors"

	"github.com/dsp-forms/core/internal/middleware"
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

// RegisterPublicRoutes mounts the browse/detail endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/forms", h.list)
	rg.GET("/forms/categories", h.categories)
	rg.GET("/forms/:id", h.get)
}

// RegisterAdminRoutes mounts the authoring endpoints. The group is expected
// to already carry the auth and admin middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/forms", h.adminList)
	rg.POST("/forms", h.create)
	rg.DELETE("/forms/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	forms, err := h.svc.ListPublic(c.Query("search"), c.Query("category"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, forms)
}

func (h *Handler) categories(c *gin.Context) {
	chips, err := h.svc.Categories()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, chips)
}

func (h *Handler) get(c *gin.Context) {
	f, err := h.svc.GetPublic(c.Param("id"))
	if err != nil {
		if errors.Is(err, errFormNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, f)
}

func (h *Handler) adminList(c *gin.Context) {
	forms, meta, err := h.svc.ListAll(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, forms, meta)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	createdBy := ""
	if ident := middleware.CurrentIdentity(c); ident != nil {
		createdBy = ident.ID
	}

	f, err := h.svc.Create(&dto, createdBy)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, f)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, errFormNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
