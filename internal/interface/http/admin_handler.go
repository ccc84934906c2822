package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
	"github.com/jortega/storefront/pkg/response"
	"github.com/jortega/storefront/pkg/validation"
)

// AdminHandler manages user records directly against the credential
// store. Every projection goes through entity.User.Public, so password
// digests never leave this handler.
type AdminHandler struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewAdminHandler(users repository.UserRepository, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Logger: logger}
}

type adminUpdateUserRequest struct {
	FullName string `json:"fullname" binding:"omitempty,min=3,max=128"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// ListUsers GET /api/admin/users (protected)
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	out := make([]entity.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	response.Success(c, http.StatusOK, out, "users")
}

// UpdateUser PUT /api/admin/users/:id (protected)
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if req.FullName != "" {
		u.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if err := h.Users.Update(c.Request.Context(), u); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user updated")
}

// DeleteUser DELETE /api/admin/users/:id (protected)
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "user deleted")
}
