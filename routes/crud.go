package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kataras/iris/v12"
)

// shared outcomes for the Update closures in the admin handlers
var (
	errRecordMissing = errors.New("record not found")
	errBadPatch      = errors.New("invalid field value")
	errEmailTaken    = errors.New("email already in use")
	errNotOwner      = errors.New("not the owner")
)

// asMap round-trips an entity through JSON so filtering and patching
// see the same field names the API exposes.
func asMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// collectFilters picks the allowed filter keys out of the query string.
func collectFilters(ctx iris.Context, allowed ...string) map[string]string {
	filters := map[string]string{}
	for _, key := range allowed {
		if v := strings.TrimSpace(ctx.URLParam(key)); v != "" {
			filters[key] = v
		}
	}
	return filters
}

// matchesFilters compares each requested field against the entity's
// JSON representation, case-insensitively.
func matchesFilters(v interface{}, filters map[string]string) bool {
	if len(filters) == 0 {
		return true
	}
	m, err := asMap(v)
	if err != nil {
		return false
	}
	for key, want := range filters {
		got, ok := m[key]
		if !ok {
			return false
		}
		if !strings.EqualFold(fmt.Sprint(got), want) {
			return false
		}
	}
	return true
}

// mergePatch overlays the supplied fields onto dst. Identity and
// creation stamps never move; protected lists (e.g. embedded
// reservations) can be excluded by the caller.
func mergePatch[T any](dst *T, patch map[string]interface{}, protected ...string) error {
	base, err := asMap(dst)
	if err != nil {
		return err
	}
	skip := map[string]bool{"id": true, "createdAt": true}
	for _, key := range protected {
		skip[key] = true
	}
	for key, value := range patch {
		if skip[key] {
			continue
		}
		base[key] = value
	}
	raw, err := json.Marshal(base)
	if err != nil {
		return err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*dst = out
	return nil
}

// paginate applies the page/per_page window used by every admin list.
func paginate[T any](ctx iris.Context, items []T) (window []T, page, perPage int, total int64) {
	page = ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}
	total = int64(len(items))
	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, perPage, total
}

// readPatch decodes a merge-patch body. Validation happens after the
// overlay, against the patched record.
func readPatch(ctx iris.Context) (map[string]interface{}, bool) {
	var patch map[string]interface{}
	if err := ctx.ReadJSON(&patch); err != nil || len(patch) == 0 {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_payload", "message": "request body must be a JSON object"})
		return nil, false
	}
	return patch, true
}
