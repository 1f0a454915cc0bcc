package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
)

// GET /api/users (admin)
func GetUsers(c *gin.Context) {
	users, err := repositories.UserRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id (admin)
func GetUserByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type userUpdateRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// PUT /api/users/:id (admin)
func UpdateUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req userUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != domain.RoleUser && role != domain.RoleAdmin {
		respondError(c, http.StatusBadRequest, "validation_error", "role must be user or admin", nil)
		return
	}

	repo := repositories.UserRepository{}
	if err := repo.Update(id, req.Name, role); err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /api/users/:id (admin)
func DeleteUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}
	if int64(p.UserID) == id {
		respondError(c, http.StatusConflict, "conflict", "admins cannot delete themselves", nil)
		return
	}
	if err := (repositories.UserRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
