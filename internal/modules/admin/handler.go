package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "shrikemedia/internal/pkg/jwt"
	"shrikemedia/internal/pkg/response"
)

type Handler struct {
	svc *Service
	jwt *jwtsvc.Service
}

func NewHandler(svc *Service, jwt *jwtsvc.Service) *Handler {
	return &Handler{svc: svc, jwt: jwt}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin")
	{
		adminGroup.POST("/login", h.Login)

		protected := adminGroup.Group("/")
		protected.Use(h.moderatorAuth())
		{
			protected.POST("/comments/:id/hide", h.HideComment)
		}
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login issues the moderator bearer token used by the moderation tooling.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// HideComment flips a guestbook entry invisible. Consumed by the external
// moderation tool, never by the gallery UI.
func (h *Handler) HideComment(c *gin.Context) {
	err := h.svc.HideComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid comment id")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hidden": true})
}

func (h *Handler) moderatorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := h.jwt.ValidateToken(tokenStr)
		if err != nil || claims.Role != RoleModerator {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("moderator", claims.Username)
		c.Next()
	}
}
