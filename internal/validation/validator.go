// Package validation checks request bodies and turns every violation into a
// field-keyed message map.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// messages maps "field.tag" to the text reported for that violation.
var messages = map[string]string{
	"name.notblank":       "Product name is required",
	"name.min":            "Product name must be between 3 and 255 characters",
	"name.max":            "Product name must be between 3 and 255 characters",
	"description.max":     "Description cannot exceed 1000 characters",
	"category.notblank":   "Category is required",
	"category.min":        "Category must be between 2 and 100 characters",
	"category.max":        "Category must be between 2 and 100 characters",
	"subcategory.max":     "Subcategory cannot exceed 100 characters",
	"sellerName.notblank": "Seller name is required",
	"sellerName.min":      "Seller name must be between 2 and 255 characters",
	"sellerName.max":      "Seller name must be between 2 and 255 characters",
	"price.required":      "Price is required",
	"price.positive":      "Price must be greater than 0",
	"price.decimals2":     "Price must have at most 2 decimal places",
	"price.maxdecimal":    "Price cannot exceed 9999999999.99",
	"quantity.required":   "Quantity is required",
	"quantity.gte":        "Quantity cannot be negative",
}

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that knows about decimal prices and blank strings.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("positive", isPositiveDecimal)
	_ = v.RegisterValidation("decimals2", hasTwoDecimals)
	_ = v.RegisterValidation("maxdecimal", isDecimalAtMost)

	return &Validator{validate: v}
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return d, ok
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive()
}

// hasTwoDecimals rejects prices with more than two fractional digits.
// Trailing zeros are allowed, so 10.500 is valid.
func hasTwoDecimals(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	if d.Exponent() >= -2 {
		return true
	}
	// A non-zero coefficient with fewer digits than the excess scale can
	// never end in enough zeros.
	if excess := -int(d.Exponent()) - 2; excess > d.NumDigits() {
		return d.IsZero()
	}
	return d.Equal(d.Truncate(2))
}

// isDecimalAtMost compares against the tag parameter, e.g. maxdecimal=99.99.
func isDecimalAtMost(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	limit, err := decimal.NewFromString(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("bad maxdecimal parameter %q: %v", fl.Param(), err))
	}
	return d.LessThanOrEqual(limit)
}

// Struct validates s and returns a *apperrors.ValidationError holding every
// violation, or nil when s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		// First violation per field wins, matching tag order.
		if _, seen := fields[e.Field()]; !seen {
			fields[e.Field()] = message(e)
		}
	}
	return &apperrors.ValidationError{Fields: fields}
}

func message(e validator.FieldError) string {
	if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	if e.Param() != "" {
		return fmt.Sprintf("Field '%s' failed on the '%s=%s' tag", e.Field(), e.Tag(), e.Param())
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
