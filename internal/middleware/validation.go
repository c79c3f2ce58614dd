package middleware

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mentorlink/mentorlink/internal/app/models/dto"
)

var validate = validator.New()

// ContextValidatedBody is the gin context key for the validated request body
const ContextValidatedBody = "validatedBody"

// ValidateRequest binds and validates a JSON request body against a fresh
// instance of the model's type, aborting with a structured 400 on failure.
// The validated object is stored under ContextValidatedBody.
func ValidateRequest(model interface{}) gin.HandlerFunc {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	return func(c *gin.Context) {
		obj := reflect.New(modelType).Interface()
		if err := c.ShouldBindJSON(obj); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
				WithDetails(err.Error())
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			c.Abort()
			return
		}

		value := reflect.ValueOf(obj)
		if value.Kind() == reflect.Ptr {
			value = value.Elem()
		}

		if err := validate.Struct(value.Interface()); err != nil {
			var fieldErrors validator.ValidationErrors
			if errors.As(err, &fieldErrors) {
				validationErrors := dto.NewValidationErrors()
				for _, fe := range fieldErrors {
					validationErrors.AddError(fe.Field(), formatValidationError(fe))
				}
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
					WithDetails(validationErrors.Errors)
				c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			} else {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
				c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			}
			c.Abort()
			return
		}

		c.Set(ContextValidatedBody, obj)
		c.Next()
	}
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
