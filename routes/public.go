package routes

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
)

// GET /experiencias
func ListExperiencias(ctx iris.Context) {
	filters := collectFilters(ctx, "status", "category", "location", "language", "hostId")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	out := make([]models.Experience, 0)
	for _, exp := range storage.Experiences.Load() {
		if !matchesFilters(exp, filters) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(exp.Title), q) &&
			!strings.Contains(strings.ToLower(exp.Description), q) {
			continue
		}
		out = append(out, exp)
	}
	ctx.JSON(out)
}

// GET /premium-experiences — approved only, for everyone.
func ListPremiumExperiences(ctx iris.Context) {
	filters := collectFilters(ctx, "category", "location", "language", "hostId")
	q := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))

	out := make([]models.PremiumExperience, 0)
	for _, exp := range storage.PremiumExperiences.Load() {
		if exp.Status != models.StatusApproved {
			continue
		}
		if !matchesFilters(exp, filters) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(exp.Title), q) &&
			!strings.Contains(strings.ToLower(exp.Description), q) {
			continue
		}
		out = append(out, exp)
	}
	ctx.JSON(out)
}

// GET /grupos
func ListGrupos(ctx iris.Context) {
	filters := collectFilters(ctx, "experienciaId", "authorId")

	out := make([]models.Group, 0)
	for _, g := range storage.Groups.Load() {
		if matchesFilters(g, filters) {
			out = append(out, g)
		}
	}
	ctx.JSON(out)
}

// GET /posts
func ListPosts(ctx iris.Context) {
	filters := collectFilters(ctx, "grupoId", "authorId")

	out := make([]models.Post, 0)
	for _, p := range storage.Posts.Load() {
		if matchesFilters(p, filters) {
			out = append(out, p)
		}
	}
	ctx.JSON(out)
}
