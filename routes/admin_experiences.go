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

// GET /admin/experiences?status=&category=&q=&page=&per_page=
// Hosts see only experiences they own.
func AdminListExperiences(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	filters := collectFilters(ctx, "status", "category", "location", "language", "hostId")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	items := make([]models.Experience, 0)
	for _, exp := range storage.Experiences.Load() {
		if actor.Role == models.RoleHost && !utils.OwnsExperience(actor, exp.HostID, exp.HostEmail()) {
			continue
		}
		if !matchesFilters(exp, filters) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(exp.Title), q) &&
			!strings.Contains(strings.ToLower(exp.Description), q) {
			continue
		}
		items = append(items, exp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	window, page, perPage, total := paginate(ctx, items)
	utils.JSONPage(ctx, window, page, perPage, total)
}

// GET /admin/experiences/{id}
func AdminGetExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")
	for _, exp := range storage.Experiences.Load() {
		if exp.ID != id {
			continue
		}
		if !utils.OwnsExperience(actor, exp.HostID, exp.HostEmail()) {
			utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this experience")
			return
		}
		ctx.JSON(iris.Map{"data": exp})
		return
	}
	utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
}

type ExperienceInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"omitempty,min=0"`
	Language    string  `json:"language"`
	HostID      string  `json:"hostId"`
}

// POST /admin/experiences — status always starts pending. A host
// actor becomes the owner regardless of the submitted hostId.
func AdminCreateExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)

	var input ExperienceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	now := time.Now().UTC()
	exp := models.Experience{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Category:    input.Category,
		Price:       input.Price,
		Language:    input.Language,
		Status:      models.StatusPending,
		HostID:      input.HostID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if actor.Role == models.RoleHost {
		exp.HostID = actor.ID
		exp.Host = &models.Host{Name: actor.Name, Email: actor.Email, AvatarURL: actor.AvatarURL}
	}

	err := storage.Experiences.Update(func(items []models.Experience) ([]models.Experience, error) {
		return append(items, exp), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save experience")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": exp})
}

// PUT /admin/experiences/{id} — merge-patch, ownership-scoped.
func AdminUpdateExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")
	patch, ok := readPatch(ctx)
	if !ok {
		return
	}

	var updated models.Experience
	err := storage.Experiences.Update(func(items []models.Experience) ([]models.Experience, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if !utils.OwnsExperience(actor, items[i].HostID, items[i].HostEmail()) {
				return nil, errNotOwner
			}
			if err := mergePatch(&items[i], patch); err != nil {
				return nil, errBadPatch
			}
			if items[i].Title == "" || !validStatus(items[i].Status) {
				return nil, errBadPatch
			}
			items[i].UpdatedAt = time.Now().UTC()
			updated = items[i]
			return items, nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"data": updated})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
	case errNotOwner:
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this experience")
	case errBadPatch:
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "invalid field value")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save experience")
	}
}

// DELETE /admin/experiences/{id} — ownership is re-checked.
func AdminDeleteExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")

	err := storage.Experiences.Update(func(items []models.Experience) ([]models.Experience, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if !utils.OwnsExperience(actor, items[i].HostID, items[i].HostEmail()) {
				return nil, errNotOwner
			}
			return append(items[:i], items[i+1:]...), nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"success": true})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
	case errNotOwner:
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this experience")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not delete experience")
	}
}

func validStatus(status string) bool {
	return status == models.StatusPending || status == models.StatusApproved || status == models.StatusRejected
}
