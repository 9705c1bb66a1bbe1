package dto

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations installs the request validations gin's binding
// engine does not ship with. Called once at startup.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// "hhmm": a wall-clock time like "09:30", used by operating hours.
	// "24:00" is allowed as a closing time meaning end of day.
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "24:00" {
			return true
		}
		_, err := time.Parse("15:04", value)
		return err == nil
	})
}
