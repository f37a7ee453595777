package member

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dojanghq/dojang/core"
)

var (
	beltTag  = "belt"
	beltText = "unknown belt rank"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(beltTag, beltValidation)
	core.RegisterCustomTranslation(validate, translator, beltTag, beltText)
}

// beltValidation checks that the provided rank is in the known sequence.
func beltValidation(fl validator.FieldLevel) bool {
	return KnownBelt(fl.Field().String())
}
