package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/Yoloholoknow/Respire/internal/api/models"
)

var validate = validator.New()

// fieldErrors converts validator errors into RFC7807 field errors.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fe.Field(),
			Message: "failed validation rule '" + fe.Tag() + "'",
			Code:    fe.Tag(),
		})
	}
	return out
}
