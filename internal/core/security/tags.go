package security

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// RegisterTags adds the security tags to v:
//
//	safe    no injection family matches
//	nosqli  the SQL family does not match
//	noxss   the script family does not match
//
// Non-string fields always pass.
func RegisterTags(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"safe":   func(s string) bool { return len(Families(s)) == 0 },
		"nosqli": func(s string) bool { return !DetectSQLInjection(s) },
		"noxss":  func(s string) bool { return !DetectXSS(s) },
	}
	for tag, check := range tags {
		if err := v.RegisterValidation(tag, stringRule(check)); err != nil {
			return err
		}
	}
	return nil
}

func stringRule(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.String {
			return true
		}
		return check(f.String())
	}
}
