package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/services"
	"github.com/thrilogia-ux/havaia-sub001/utils"
)

type ReservationRequest struct {
	ExperienceID string `json:"experienceId" validate:"required"`
	UserID       string `json:"userId" validate:"required"`
	UserName     string `json:"userName" validate:"required"`
	UserAvatar   string `json:"userAvatar"`
	Seats        int    `json:"seats" validate:"required,min=1"`
}

// POST /reservations
func CreateReservation(ctx iris.Context) {
	var req ReservationRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	exp, err := services.Reserve(req.ExperienceID, req.UserID, req.UserName, req.UserAvatar, req.Seats)
	switch {
	case errors.Is(err, services.ErrExperienceNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
		return
	case errors.Is(err, services.ErrCapacityExceeded):
		utils.JSONError(ctx, http.StatusBadRequest, "capacity_exceeded", "not enough seats available")
		return
	case errors.Is(err, services.ErrAlreadyReserved):
		utils.JSONError(ctx, http.StatusBadRequest, "already_reserved", "you already have a reservation for this experience")
		return
	case errors.Is(err, services.ErrInvalidSeats):
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "seats must be at least 1")
		return
	case err != nil:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save reservation")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "experience": exp})
}

// DELETE /reservations?experienceId=&userId=
func CancelReservation(ctx iris.Context) {
	experienceID := strings.TrimSpace(ctx.URLParam("experienceId"))
	userID := strings.TrimSpace(ctx.URLParam("userId"))
	if experienceID == "" || userID == "" {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "experienceId and userId are required")
		return
	}

	exp, err := services.Cancel(experienceID, userID)
	switch {
	case errors.Is(err, services.ErrExperienceNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "experience not found")
		return
	case errors.Is(err, services.ErrReservationNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "no reservation found for this user")
		return
	case err != nil:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not cancel reservation")
		return
	}

	ctx.JSON(iris.Map{"success": true, "experience": exp})
}
