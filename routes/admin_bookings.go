package routes

import (
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
	"github.com/thrilogia-ux/havaia-sub001/utils"
)

// ownsBooking reports whether the actor may touch bookings for the
// given experience id. A booking has no host of its own; ownership is
// borrowed from the referenced experience, and a dangling reference
// grants a host nothing.
func ownsBooking(actor models.User, experienciaID string) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	for _, exp := range storage.Experiences.Load() {
		if exp.ID == experienciaID {
			return utils.OwnsExperience(actor, exp.HostID, exp.HostEmail())
		}
	}
	for _, exp := range storage.PremiumExperiences.Load() {
		if exp.ID == experienciaID {
			return utils.OwnsExperience(actor, exp.HostID, exp.HostEmail())
		}
	}
	return false
}

// GET /admin/reservations — hosts see only bookings on experiences
// they own.
func AdminListBookings(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	filters := collectFilters(ctx, "experienciaId", "userId", "status", "date")

	items := make([]models.Booking, 0)
	for _, b := range storage.Bookings.Load() {
		if actor.Role == models.RoleHost && !ownsBooking(actor, b.ExperienciaID) {
			continue
		}
		if !matchesFilters(b, filters) {
			continue
		}
		items = append(items, b)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	window, page, perPage, total := paginate(ctx, items)
	utils.JSONPage(ctx, window, page, perPage, total)
}

// GET /admin/reservations/{id}
func AdminGetBooking(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")
	for _, b := range storage.Bookings.Load() {
		if b.ID != id {
			continue
		}
		if !ownsBooking(actor, b.ExperienciaID) {
			utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this reservation")
			return
		}
		ctx.JSON(iris.Map{"data": b})
		return
	}
	utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
}

type BookingInput struct {
	ExperienciaID string `json:"experienciaId" validate:"required"`
	UserID        string `json:"userId" validate:"required"`
	UserName      string `json:"userName"`
	Date          string `json:"date"`
	Seats         int    `json:"seats" validate:"required,min=1"`
}

// POST /admin/reservations — status starts pending.
func AdminCreateBooking(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)

	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if actor.Role == models.RoleHost && !ownsBooking(actor, input.ExperienciaID) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this experience")
		return
	}

	now := time.Now().UTC()
	booking := models.Booking{
		ID:            uuid.NewString(),
		ExperienciaID: input.ExperienciaID,
		UserID:        input.UserID,
		UserName:      input.UserName,
		Date:          input.Date,
		Seats:         input.Seats,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := storage.Bookings.Update(func(bookings []models.Booking) ([]models.Booking, error) {
		return append(bookings, booking), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save reservation")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": booking})
}

// PUT /admin/reservations/{id}
func AdminUpdateBooking(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")
	patch, ok := readPatch(ctx)
	if !ok {
		return
	}

	var updated models.Booking
	err := storage.Bookings.Update(func(bookings []models.Booking) ([]models.Booking, error) {
		for i := range bookings {
			if bookings[i].ID != id {
				continue
			}
			if !ownsBooking(actor, bookings[i].ExperienciaID) {
				return nil, errNotOwner
			}
			if err := mergePatch(&bookings[i], patch); err != nil {
				return nil, errBadPatch
			}
			if bookings[i].ExperienciaID == "" || bookings[i].UserID == "" ||
				bookings[i].Seats < 1 || !validStatus(bookings[i].Status) {
				return nil, errBadPatch
			}
			bookings[i].UpdatedAt = time.Now().UTC()
			updated = bookings[i]
			return bookings, nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"data": updated})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
	case errNotOwner:
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this reservation")
	case errBadPatch:
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "invalid field value")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save reservation")
	}
}

// DELETE /admin/reservations/{id}
func AdminDeleteBooking(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)
	id := ctx.Params().Get("id")

	err := storage.Bookings.Update(func(bookings []models.Booking) ([]models.Booking, error) {
		for i := range bookings {
			if bookings[i].ID != id {
				continue
			}
			if !ownsBooking(actor, bookings[i].ExperienciaID) {
				return nil, errNotOwner
			}
			return append(bookings[:i], bookings[i+1:]...), nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"success": true})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
	case errNotOwner:
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "you do not manage this reservation")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not delete reservation")
	}
}
