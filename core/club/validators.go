package club

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dojanghq/dojang/core"
)

var (
	dayTypeTag  = "daytype"
	dayTypeText = "day type must be one of even, odd or weekend"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(dayTypeTag, dayTypeValidation)
	core.RegisterCustomTranslation(validate, translator, dayTypeTag, dayTypeText)
}

func dayTypeValidation(fl validator.FieldLevel) bool {
	_, ok := dayTypeWeekdays[fl.Field().String()]
	return ok
}
