package services

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// userSchema holds the user fields checked before anything is persisted.
type userSchema struct {
	Email    string `validate:"required,emailshape"`
	Password string `validate:"required,min=8,strongpwd"`
}

// userMessages maps "<Field>.<tag>" to the message reported for that rule.
var userMessages = map[string]string{
	"Email.required":     "Email is required.",
	"Email.emailshape":   "Please provide a valid email address.",
	"Password.required":  "Password is required.",
	"Password.min":       "Password must be at least 8 characters long.",
	"Password.strongpwd": "Password must include at least one uppercase letter, one lowercase letter, one number, and one special character.",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterAlias("strongpwd",
		"containsany=abcdefghijklmnopqrstuvwxyz,"+
			"containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,"+
			"containsany=0123456789,"+
			"containsany=!@#$%^&*")
	return v
}

// validateUser checks email and password and returns a *ValidationError
// carrying one message per failing field, in field order.
func validateUser(v *validator.Validate, email, password string) error {
	err := v.Struct(userSchema{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{Messages: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := userMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid."
		}
		verr.Messages = append(verr.Messages, msg)
	}
	return verr
}
