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

// GET /admin/groups
func AdminListGroups(ctx iris.Context) {
	filters := collectFilters(ctx, "experienciaId", "authorId")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	items := make([]models.Group, 0)
	for _, g := range storage.Groups.Load() {
		if !matchesFilters(g, filters) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(g.Name), q) &&
			!strings.Contains(strings.ToLower(g.Description), q) {
			continue
		}
		items = append(items, g)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	window, page, perPage, total := paginate(ctx, items)
	utils.JSONPage(ctx, window, page, perPage, total)
}

type GroupInput struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	ExperienciaID string `json:"experienciaId"`
	AuthorID      string `json:"authorId"`
	AuthorName    string `json:"authorName"`
}

// POST /admin/groups
func AdminCreateGroup(ctx iris.Context) {
	var input GroupInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	now := time.Now().UTC()
	group := models.Group{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Description:   input.Description,
		ExperienciaID: input.ExperienciaID,
		AuthorID:      input.AuthorID,
		AuthorName:    input.AuthorName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := storage.Groups.Update(func(groups []models.Group) ([]models.Group, error) {
		return append(groups, group), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save group")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": group})
}

// PUT /admin/groups/{id}
func AdminUpdateGroup(ctx iris.Context) {
	id := ctx.Params().Get("id")
	patch, ok := readPatch(ctx)
	if !ok {
		return
	}

	var updated models.Group
	err := storage.Groups.Update(func(groups []models.Group) ([]models.Group, error) {
		for i := range groups {
			if groups[i].ID != id {
				continue
			}
			if err := mergePatch(&groups[i], patch); err != nil {
				return nil, errBadPatch
			}
			if groups[i].Name == "" {
				return nil, errBadPatch
			}
			groups[i].UpdatedAt = time.Now().UTC()
			updated = groups[i]
			return groups, nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"data": updated})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "group not found")
	case errBadPatch:
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "invalid field value")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save group")
	}
}

// DELETE /admin/groups/{id}
func AdminDeleteGroup(ctx iris.Context) {
	id := ctx.Params().Get("id")

	err := storage.Groups.Update(func(groups []models.Group) ([]models.Group, error) {
		for i := range groups {
			if groups[i].ID == id {
				return append(groups[:i], groups[i+1:]...), nil
			}
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"success": true})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "group not found")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not delete group")
	}
}
