package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
)

// BindAndValidate binds the JSON body into obj and turns binding
// failures into field-level validation errors
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			errs := dto.NewValidationErrors()
			for _, fieldErr := range validationErrs {
				errs.AddError(fieldErr.Field(), validationMessage(fieldErr))
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
				WithDetails(errs.Errors)
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return false
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or too small (minimum: " + fieldErr.Param() + ")"
	case "max":
		return "Value is too long or too large (maximum: " + fieldErr.Param() + ")"
	case "gt":
		return "Value must be greater than " + fieldErr.Param()
	default:
		return "Invalid value"
	}
}
