// Package validators registers the custom binding rules used by the
// request DTOs.
package validators

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phMobile matches Philippine mobile numbers: +639XXXXXXXXX or 09XXXXXXXXX.
var phMobile = regexp.MustCompile(`^(?:\+63|0)9\d{9}$`)

// Register installs the custom rules into gin's binding engine. Call once
// at startup, before any request is served.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phmobile", func(fl validator.FieldLevel) bool {
		return phMobile.MatchString(fl.Field().String())
	})
}
