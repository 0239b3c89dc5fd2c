package auth

import (
	"errors"

	"github.com/dsp-forms/core/internal/middleware"
	jwtpkg "github.com/dsp-forms/core/internal/pkg/jwt"
	"github.com/dsp-forms/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/sign-out", h.signOut)
	a.GET("/session", middleware.OptionalAuth(h.svc.db), h.session)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "is_admin": u.IsAdmin})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.ForbiddenMsg(c, "invalid email or password")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, loginResponse{Token: token})
}

func (h *Handler) signOut(c *gin.Context) {
	if token := middleware.NormalizeToken(c.GetHeader("Authorization")); token != "" {
		if claims, err := jwtpkg.Parse(token); err == nil && claims.SessionID != "" {
			if err := h.svc.SignOut(claims.UserID, claims.SessionID); err != nil {
				response.InternalError(c, err)
				return
			}
		}
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) session(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, ident)
}
