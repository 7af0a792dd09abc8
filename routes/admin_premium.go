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

// GET /admin/premium-experiences. Hosts see only their own rows, any
// status.
func AdminListPremiumExperiences(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	filters := collectFilters(ctx, "status", "category", "location", "language", "hostId")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	items := make([]models.PremiumExperience, 0)
	for _, exp := range storage.PremiumExperiences.Load() {
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

// GET /admin/premium-experiences/{id}
func AdminGetPremiumExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")
	for _, exp := range storage.PremiumExperiences.Load() {
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

type PremiumExperienceInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"omitempty,min=0"`
	Language    string   `json:"language"`
	HostID      string   `json:"hostId"`
	MaxSeats    int      `json:"maxSeats" validate:"required,min=1"`
	Dates       []string `json:"dates"`
}

// POST /admin/premium-experiences — starts pending with an empty
// reservation ledger.
func AdminCreatePremiumExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)

	var input PremiumExperienceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	now := time.Now().UTC()
	exp := models.PremiumExperience{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Category:     input.Category,
		Price:        input.Price,
		Language:     input.Language,
		Status:       models.StatusPending,
		HostID:       input.HostID,
		MaxSeats:     input.MaxSeats,
		Reservations: []models.Reservation{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, d := range input.Dates {
		exp.Dates = append(exp.Dates, models.PremiumExperienceDate{Date: d})
	}
	if actor.Role == models.RoleHost {
		exp.HostID = actor.ID
		exp.Host = &models.Host{Name: actor.Name, Email: actor.Email, AvatarURL: actor.AvatarURL}
	}

	err := storage.PremiumExperiences.Update(func(items []models.PremiumExperience) ([]models.PremiumExperience, error) {
		return append(items, exp), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save experience")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": exp})
}

// PUT /admin/premium-experiences/{id} — merge-patch. The reservation
// ledger fields are not patchable: reservations change only through
// the booking flow, so the cached counter stays consistent.
func AdminUpdatePremiumExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")
	patch, ok := readPatch(ctx)
	if !ok {
		return
	}

	var updated models.PremiumExperience
	err := storage.PremiumExperiences.Update(func(items []models.PremiumExperience) ([]models.PremiumExperience, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if !utils.OwnsExperience(actor, items[i].HostID, items[i].HostEmail()) {
				return nil, errNotOwner
			}
			if err := mergePatch(&items[i], patch, "reservations", "reservedSeats"); err != nil {
				return nil, errBadPatch
			}
			if items[i].Title == "" || !validStatus(items[i].Status) || items[i].MaxSeats < 1 {
				return nil, errBadPatch
			}
			// capacity may not shrink below what is already booked
			if items[i].MaxSeats < items[i].ReservedSeats {
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

// DELETE /admin/premium-experiences/{id}
func AdminDeletePremiumExperience(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")

	err := storage.PremiumExperiences.Update(func(items []models.PremiumExperience) ([]models.PremiumExperience, error) {
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
