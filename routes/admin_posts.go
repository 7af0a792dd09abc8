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

// GET /admin/posts
func AdminListPosts(ctx iris.Context) {
	filters := collectFilters(ctx, "grupoId", "authorId")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	items := make([]models.Post, 0)
	for _, p := range storage.Posts.Load() {
		if !matchesFilters(p, filters) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Content), q) {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	window, page, perPage, total := paginate(ctx, items)
	utils.JSONPage(ctx, window, page, perPage, total)
}

type PostInput struct {
	Content    string `json:"content" validate:"required"`
	GrupoID    string `json:"grupoId"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
}

// POST /admin/posts — the acting admin is the author unless the body
// names one.
func AdminCreatePost(ctx iris.Context) {
	actor := utils.ActorFromContext(ctx)

	var input PostInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.AuthorID == "" {
		input.AuthorID = actor.ID
		input.AuthorName = actor.Name
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:         uuid.NewString(),
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Content:    input.Content,
		GrupoID:    input.GrupoID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := storage.Posts.Update(func(posts []models.Post) ([]models.Post, error) {
		return append(posts, post), nil
	})
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save post")
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": post})
}

// PUT /admin/posts/{id}
func AdminUpdatePost(ctx iris.Context) {
	id := ctx.Params().Get("id")
	patch, ok := readPatch(ctx)
	if !ok {
		return
	}

	var updated models.Post
	err := storage.Posts.Update(func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != id {
				continue
			}
			if err := mergePatch(&posts[i], patch); err != nil {
				return nil, errBadPatch
			}
			if posts[i].Content == "" {
				return nil, errBadPatch
			}
			posts[i].UpdatedAt = time.Now().UTC()
			updated = posts[i]
			return posts, nil
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"data": updated})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "post not found")
	case errBadPatch:
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_payload", "invalid field value")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not save post")
	}
}

// DELETE /admin/posts/{id}
func AdminDeletePost(ctx iris.Context) {
	id := ctx.Params().Get("id")

	err := storage.Posts.Update(func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID == id {
				return append(posts[:i], posts[i+1:]...), nil
			}
		}
		return nil, errRecordMissing
	})
	switch err {
	case nil:
		ctx.JSON(iris.Map{"success": true})
	case errRecordMissing:
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "post not found")
	default:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "could not delete post")
	}
}
