package validation

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/clause"

	"academic_records/internal/models"
)

type stateKey struct{}
type ignoreKey struct{}

// checkState collects the first database error raised inside a rule
type checkState struct {
	err error
}

// IgnoreID makes unique rules skip the row with id, so a record can keep its own values on update
func IgnoreID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, ignoreKey{}, id)
}

func (v *Validator) registerRules() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.validate.RegisterValidation("string", isString))
	must(v.validate.RegisterValidation("integer", isInteger))
	must(v.validate.RegisterValidation("date", isDate))
	must(v.validate.RegisterValidationCtx("exists", v.exists))
	must(v.validate.RegisterValidationCtx("unique", v.unique))
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isInteger(fl validator.FieldLevel) bool {
	_, ok := toInt(fl.Field())
	return ok
}

func isDate(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// toInt accepts JSON numbers with an integral value and numeric strings
func toInt(field reflect.Value) (int64, bool) {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := field.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(field.String()), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// lookupValue normalizes the field so it compares equal to the stored column
func lookupValue(field reflect.Value) interface{} {
	if field.Kind() == reflect.String {
		return field.String()
	}
	if n, ok := toInt(field); ok {
		return n
	}
	return field.Interface()
}

// tableColumn splits "table.column"
func tableColumn(param string) (string, string, bool) {
	table, column, ok := strings.Cut(param, ".")
	return table, column, ok && table != "" && column != ""
}

func (v *Validator) count(ctx context.Context, param string, field reflect.Value, ignore uint) (int64, bool) {
	table, column, ok := tableColumn(param)
	if !ok {
		recordErr(ctx, fmt.Errorf("rule parameter %q is not table.column", param))
		return 0, false
	}
	q := v.db.WithContext(ctx).Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: lookupValue(field)})
	if ignore != 0 {
		q = q.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: ignore})
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		recordErr(ctx, err)
		return 0, false
	}
	return n, true
}

func recordErr(ctx context.Context, err error) {
	if state, ok := ctx.Value(stateKey{}).(*checkState); ok && state.err == nil {
		state.err = err
	}
}

func (v *Validator) exists(ctx context.Context, fl validator.FieldLevel) bool {
	n, ok := v.count(ctx, fl.Param(), fl.Field(), 0)
	// a failed lookup is reported through checkState, not as a violation
	return !ok || n > 0
}

func (v *Validator) unique(ctx context.Context, fl validator.FieldLevel) bool {
	ignore, _ := ctx.Value(ignoreKey{}).(uint)
	n, ok := v.count(ctx, fl.Param(), fl.Field(), ignore)
	return !ok || n == 0
}
