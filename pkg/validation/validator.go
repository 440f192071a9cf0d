package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/onboarding"
)

var initOnce sync.Once

// Init configures the validator behind Gin's binding: JSON tag names in
// errors, a password alias and the complaint enum tags. Safe to call twice.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8")
		_ = v.RegisterValidation("complaint_type", func(fl validator.FieldLevel) bool {
			return entity.ComplaintType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("complaint_status", func(fl validator.FieldLevel) bool {
			return entity.ComplaintStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("onboarding_stage", func(fl validator.FieldLevel) bool {
			return onboarding.ValidStage(int(fl.Field().Int()))
		})
	})
}

// ToDetails converts binding errors into a map[field]message for error details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return "must be at most " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "complaint_type":
		return "must be one of: " + joinEnum(entity.ComplaintTypes())
	case "complaint_status":
		return "must be one of: " + joinEnum(entity.ComplaintStatuses())
	case "onboarding_stage":
		return "must be 0, 1 or 2"
	}
	if param != "" {
		return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
	}
	return fmt.Sprintf("validation failed for '%s'", fe.Tag())
}

func joinEnum[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
