package attendance

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

var (
	statusTag  = "attstatus"
	statusText = "invalid attendance status"
)

// RegisterValidators registers this package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	return ValidStatus(Status(fl.Field().String()))
}
