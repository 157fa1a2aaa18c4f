package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldErrors validator hatalarını alan bazlı detay haritasına çevirir.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			out[field] = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			out[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return out
}
