package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s and returns the message of the first failing field, the
// way the API reports request-body errors: one message at a time. The
// messages map is keyed by "Field.tag" with a plain "Field" fallback.
func Struct(s interface{}, messages map[string]string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return errors.New(msg)
		}
		if msg, ok := messages[fe.Field()]; ok {
			return errors.New(msg)
		}
		return fmt.Errorf("campo %s inválido", fe.Field())
	}

	return err
}
