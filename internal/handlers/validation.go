package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerDecimalValidators teaches gin's validator to read decimal.Decimal
// fields as strings and adds the decimal_gt0 / decimal_gte0 rules.
func registerDecimalValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("decimal_gt0", decimalRule(func(d decimal.Decimal) bool { return d.IsPositive() }))
		_ = v.RegisterValidation("decimal_gte0", decimalRule(func(d decimal.Decimal) bool { return !d.IsNegative() }))
	})
}

func decimalRule(check func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		var d decimal.Decimal
		switch v := fl.Field().Interface().(type) {
		case string:
			parsed, err := decimal.NewFromString(v)
			if err != nil {
				return false
			}
			d = parsed
		case decimal.Decimal:
			d = v
		default:
			return false
		}
		return check(d)
	}
}
