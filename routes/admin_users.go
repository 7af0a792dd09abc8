package routes

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
	"github.com/thrilogia-ux/havaia-sub001/utils"
)

// GET /admin/users?role=&q=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	filters := collectFilters(ctx, "role", "city", "country")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	items := make([]models.User, 0)
	for _, u := range storage.Users.Load() {
		if !matchesFilters(u, filters) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	window, page, perPage, total := paginate(ctx, items)
	utils.JSONPage(ctx, window, page, perPage, total)
}

// GET /admin/users/{id}
func AdminGetUser(ctx iris.Context) {
	id := ctx.Params().Get("id")
	for _, u := range storage.Users.Load() {
		if u.ID == id {
			ctx.JSON(iris.Map{"data": u})
			return
		}
	}
	utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
}

type AdminUserInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	City      string `json:"city"`
	Country   string `json:"country"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role" validate:"omitempty,oneof=user host admin"`
}

// POST /admin/users
func AdminCreateUser(ctx iris.Context) {
	var input AdminUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		City:      input.City,
		Country:   input.Country,
		AvatarURL: input.AvatarURL,
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, user.Email) {
				return nil, errEmailTaken
			}
		}
		return append(users, user), nil
	})
	if err == errEmailTaken {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "email already in use")
		return
	}
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save user")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": user})
}

// PUT /admin/users/{id} — merge-patch.
func AdminUpdateUser(ctx iris.Context) {
	id := ctx.Params().Get("id")
	patch, ok := readPatch(ctx)
	if !ok {
		return
	}

	var updated models.User
	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if err := mergePatch(&users[i], patch); err != nil {
				return nil, errBadPatch
			}
			if users[i].Name == "" || users[i].Email == "" || !models.ValidRole(users[i].Role) {
				return nil, errBadPatch
			}
			for j := range users {
				if j != i && strings.EqualFold(users[j].Email, users[i].Email) {
					return nil, errEmailTaken
				}
			}
			users[i].UpdatedAt = time.Now().UTC()
			updated = users[i]
			return users, nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"data": updated})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
	case errBadPatch:
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "invalid field value")
	case errEmailTaken:
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "email already in use")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save user")
	}
}

// DELETE /admin/users/{id} — an admin may not delete itself.
func AdminDeleteUser(ctx iris.Context) {
	id := ctx.Params().Get("id")
	actor := utils.ActorFromContext(ctx)
	if actor.ID == id {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "cannot delete own user")
		return
	}

	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == id {
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"success": true})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not delete user")
	}
}
