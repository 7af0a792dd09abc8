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

type MessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func groupExists(groupID string) bool {
	for _, g := range storage.Groups.Load() {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// GET /grupos/{id}/messages — any resolved user may read.
func ListGroupMessages(ctx iris.Context) {
	if _, ok := utils.ResolveActor(ctx); !ok {
		utils.JSONError(ctx, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	groupID := ctx.Params().Get("id")
	if !groupExists(groupID) {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "group not found")
		return
	}

	out := make([]models.Message, 0)
	for _, m := range storage.Messages.Load() {
		if m.GrupoID == groupID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	ctx.JSON(out)
}

// POST /grupos/{id}/messages
func SendGroupMessage(ctx iris.Context) {
	actor, ok := utils.ResolveActor(ctx)
	if !ok {
		utils.JSONError(ctx, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	groupID := ctx.Params().Get("id")
	if !groupExists(groupID) {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "group not found")
		return
	}

	var req MessageRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	msg := models.Message{
		ID:         uuid.NewString(),
		GrupoID:    groupID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Text:       req.Text,
		Timestamp:  time.Now().UTC(),
	}
	err := storage.Messages.Update(func(msgs []models.Message) ([]models.Message, error) {
		return append(msgs, msg), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save message")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(msg)
}
