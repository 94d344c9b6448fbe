package chi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateParams checks bound query parameters against their validate tags and
// renders the first violation as a client-facing message.
func validateParams(params any) error {
	err := paramValidator().Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%s must be %s %s", fe.Field(), constraintWord(fe.Tag()), fe.Param())
	}
	return err
}

func constraintWord(tag string) string {
	switch tag {
	case "gte":
		return "at least"
	case "lte":
		return "at most"
	default:
		return tag
	}
}
