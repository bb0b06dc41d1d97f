package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"hr_payroll/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type periodInput struct {
	Year  int `validate:"gte=1900,lte=9999"`
	Month int `validate:"gte=1,lte=12"`
}

func validatePeriod(year, month int) error {
	return validateStruct(periodInput{Year: year, Month: month})
}

// validateStruct runs struct tag validation and folds failures into a
// single InvalidInput error naming every offending field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return types.NewAppError(types.CodeInvalidInput, "invalid input", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return types.NewAppError(types.CodeInvalidInput, strings.Join(fields, "; "), nil)
}
