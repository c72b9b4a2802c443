package application

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
		_, err := domain.NormalizeMSISDN(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("ticket_category", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || domain.TicketCategory(value).Valid()
	})
	return v
}

type RegisterInput struct {
	Username    string `validate:"required,min=3"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"required,msisdn"`
	Password    string `validate:"required,min=8"`
}

type TicketInput struct {
	Subject     string                `validate:"required"`
	Category    domain.TicketCategory `validate:"ticket_category"`
	Description string                `validate:"required"`
}

type resetRequestInput struct {
	Email string `validate:"required,email"`
}

type resetConfirmInput struct {
	Token    string `validate:"required"`
	Password string `validate:"required,min=8"`
}

// inputMessages maps offending fields to the message shown to the user, in
// place of validator's internal phrasing.
var inputMessages = map[string]string{
	"Username":    "Username must be at least 3 characters.",
	"Email":       "A valid email address is required.",
	"PhoneNumber": "Phone number must be a valid Kenyan mobile number (07... or 2547...).",
	"Password":    "Password must be at least 8 characters.",
	"Token":       "Reset token is required.",
	"Subject":     "Subject is required.",
	"Category":    "Unknown ticket category.",
	"Description": "Description is required.",
}

// InputError carries a user-facing message for a locally rejected input.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := fieldErrs[0].Field()
		message, ok := inputMessages[field]
		if !ok {
			message = fmt.Sprintf("Invalid %s.", field)
		}
		return &InputError{Field: field, Message: message}
	}

	return err
}
