package signup

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Payload is the typed form of a submitted sign-up.
type Payload struct {
	Name             string `json:"name" yaml:"name"`
	Email            string `json:"email" yaml:"email"`
	Password         string `json:"password" yaml:"password"`
	ConfirmPassword  string `json:"confirmPassword" yaml:"confirmPassword"`
	Coupon           bool   `json:"coupon" yaml:"coupon"`
	Occupation       string `json:"occupation" yaml:"occupation"`
	TermsAndServices bool   `json:"termsAndServices" yaml:"termsAndServices"`
}

// Redacted returns a copy with both password fields masked.
func (p Payload) Redacted() Payload {
	if p.Password != "" {
		p.Password = form.RedactedValue
	}
	if p.ConfirmPassword != "" {
		p.ConfirmPassword = form.RedactedValue
	}
	return p
}

// Decode converts submitted values into a Payload. Missing and nil values
// decode to zero values; a value of the wrong type is an error.
func Decode(v form.Values) (Payload, error) {
	var (
		p    Payload
		errs []error
	)
	text := func(name string, dst *string) {
		switch val := v[name].(type) {
		case nil:
		case string:
			*dst = val
		default:
			errs = append(errs, fmt.Errorf("%w: %s is %T, want string", ErrInvalidPayload, name, val))
		}
	}
	flag := func(name string, dst *bool) {
		switch val := v[name].(type) {
		case nil:
		case bool:
			*dst = val
		default:
			errs = append(errs, fmt.Errorf("%w: %s is %T, want bool", ErrInvalidPayload, name, val))
		}
	}

	text(FieldName, &p.Name)
	text(FieldEmail, &p.Email)
	text(FieldPassword, &p.Password)
	text(FieldConfirmPassword, &p.ConfirmPassword)
	flag(FieldCoupon, &p.Coupon)
	text(FieldOccupation, &p.Occupation)
	flag(FieldTermsAndServices, &p.TermsAndServices)

	if err := errors.Join(errs...); err != nil {
		return Payload{}, err
	}
	return p, nil
}
