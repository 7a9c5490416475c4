package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/models"
)

// Validate is the shared validator with the app's custom rules
// registered.
var Validate = validator.New()

func init() {
	_ = Validate.RegisterValidation("classgroup", func(fl validator.FieldLevel) bool {
		return models.IsValidClassGroup(fl.Field().String())
	})
}
