package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	intconfig "github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/config"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/repositories"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/utils"
)

// EnsureDefaultAdmin is a one-shot provisioning step, run only when the
// operator asks for it. It creates the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD if no user with that email exists yet.
func EnsureDefaultAdmin(env intconfig.Env) error {
	if env.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be set to provision the admin account")
	}

	repo := repositories.UserRepository{}
	if existing, err := repo.GetByEmail(env.AdminEmail); err == nil {
		utils.LogEvent("", "provision", "admin", fmt.Sprintf("admin already present, user_id=%d", existing.ID))
		return nil
	} else if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(env.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id, err := repo.Create(models.User{
		Name:         "Administrator",
		Email:        env.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return err
	}

	utils.LogEvent("", "provision", "admin", fmt.Sprintf("admin created, user_id=%d", id))
	return nil
}
