package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
	"github.com/thrilogia-ux/havaia-sub001/utils"
)

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	City      string `json:"city"`
	Country   string `json:"country"`
	AvatarURL string `json:"avatarUrl"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /auth/register — creates a user-role account. Registering an
// email that already exists behaves as a login and returns the
// existing record; the returned id is the bearer credential.
func Register(ctx iris.Context) {
	var req RegisterRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	created := false
	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, req.Email) {
				user = u
				return users, nil
			}
		}
		now := time.Now().UTC()
		user = models.User{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Email:     req.Email,
			City:      req.City,
			Country:   req.Country,
			AvatarURL: req.AvatarURL,
			Role:      models.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}
		created = true
		return append(users, user), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save user")
		return
	}

	if created {
		ctx.StatusCode(http.StatusCreated)
	}
	ctx.JSON(user)
}

// POST /auth/login — lookup by email, nothing more.
func Login(ctx iris.Context) {
	var req LoginRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	for _, u := range storage.Users.Load() {
		if strings.EqualFold(u.Email, req.Email) {
			ctx.JSON(u)
			return
		}
	}
	utils.JSONError(ctx, http.StatusNotFound, "not_found", "no account with that email")
}
