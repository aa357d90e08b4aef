package addressbook

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-addressbook/internal/config"
)

const (
	tagPhone    = "phone"
	tagBirthday = "birthday"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation(tagPhone, func(fl validator.FieldLevel) bool {
		return isValidPhone(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("%s %s: %v", config.ErrValidatorSetup, tagPhone, err))
	}
	if err := validate.RegisterValidation(tagBirthday, func(fl validator.FieldLevel) bool {
		_, err := parseBirthday(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("%s %s: %v", config.ErrValidatorSetup, tagBirthday, err))
	}
}

// isValidPhone accepts text whose trimmed form is exactly ten ASCII digits.
func isValidPhone(value string) bool {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) != config.PhoneDigits {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] < '0' || trimmed[i] > '9' {
			return false
		}
	}
	return true
}

// parseBirthday parses strict DD.MM.YYYY text. time.Parse rejects
// single-digit fields and days that do not exist in the given month.
// Year 0 parses but is not a calendar year.
func parseBirthday(value string) (time.Time, error) {
	t, err := time.Parse(config.DateFormatBirthday, value)
	if err != nil {
		return time.Time{}, err
	}
	if t.Year() < config.MinBirthYear {
		return time.Time{}, errors.New(config.ErrBirthdayFormat)
	}
	return t, nil
}

// checkField runs the registered validation tag for kind against value.
func checkField(kind FieldKind, value, tag, reason string) error {
	if err := validate.Var(value, tag); err != nil {
		return &ValidationError{Kind: kind, Value: value, Reason: reason}
	}
	return nil
}
