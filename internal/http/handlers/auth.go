package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/http/middleware"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := repositories.UserRepository{}.GetByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", nil)
		return
	}

	token, err := middleware.SignToken([]byte(cfg.JWTSecret), user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "failed to sign token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "name and email are required", nil)
		return
	}
	if len(req.Password) < 6 {
		respondError(c, http.StatusBadRequest, "validation_error", "password must be at least 6 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "hash_error", "failed to hash password", nil)
		return
	}

	repo := repositories.UserRepository{}
	id, err := repo.Create(models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := middleware.SignToken([]byte(cfg.JWTSecret), id, domain.RoleUser)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "failed to sign token", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    id,
			"name":  strings.TrimSpace(req.Name),
			"email": strings.TrimSpace(strings.ToLower(req.Email)),
			"role":  domain.RoleUser,
		},
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	p, ok := MustPrincipal(c)
	if !ok {
		return
	}

	user, err := repositories.UserRepository{}.GetByID(int64(p.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
