package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// HandleValidationErrors converts a ReadJSON failure into the 400
// payload shape used across the API. Validator errors list the
// offending fields; anything else (bad JSON) gets a generic message.
func HandleValidationErrors(err error, ctx iris.Context) {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fields := make([]iris.Map, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, iris.Map{"field": e.Field(), "rule": e.Tag()})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":   "invalid_payload",
			"message": "validation failed",
			"fields":  fields,
		})
		return
	}
	ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
		"error":   "invalid_payload",
		"message": "malformed request body",
	})
}
