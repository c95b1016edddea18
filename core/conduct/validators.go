package conduct

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

var (
	categoryTag  = "conductcat"
	categoryText = "invalid report category"
)

// RegisterValidators registers this package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	return ValidCategory(Category(fl.Field().String()))
}
