package roster

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

var (
	sessionKindTag  = "sessionkind"
	sessionKindText = "invalid session kind"
)

// RegisterValidators registers this package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(sessionKindTag, sessionKindValidation)
	core.RegisterCustomTranslation(validate, translator, sessionKindTag, sessionKindText)
}

func sessionKindValidation(fl validator.FieldLevel) bool {
	return ValidSessionKind(SessionKind(fl.Field().String()))
}
