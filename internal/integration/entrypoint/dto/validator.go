package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

var moneyCeilings = map[string]valueobject.Ceiling{
	"transaction": valueobject.TransactionCeiling,
	"goal":        valueobject.GoalCeiling,
	"summary":     valueobject.SummaryCeiling,
}

// RegisterValidators teaches v to validate decimal amounts as numbers and
// adds the money_ceiling tag, e.g. `binding:"required,gt=0,money_ceiling=goal"`.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})
	return v.RegisterValidation("money_ceiling", moneyCeiling)
}

func decimalAsFloat(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// moneyCeiling checks an amount stays strictly below the named ceiling.
func moneyCeiling(fl validator.FieldLevel) bool {
	ceiling, ok := moneyCeilings[fl.Param()]
	if !ok {
		return false
	}

	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float() < ceiling.Float()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return field.Int() < int64(ceiling)
	default:
		return false
	}
}
