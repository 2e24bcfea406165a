package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/usecase"
)

var (
	// required field missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidEmail = errors.New("invalid email")

	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrInvalidShipping = errors.New("unknown shipping method")

	ErrInvalidDiscount = errors.New("discount must be between 1 and 100")
)

const minPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type formValidator struct{}

// usecases depend on the interface
func NewFormValidator() usecase.FormValidator {
	return &formValidator{}
}

func (v *formValidator) ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !isEmailLike(email) {
		return ErrInvalidEmail
	}
	return nil
}

func (v *formValidator) ValidateRegister(username string, email string, password string, confirm string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidInput
	}
	if err := v.ValidateLogin(email, password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

func (v *formValidator) ValidateEmail(email string) error {
	if !isEmailLike(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func (v *formValidator) ValidateNewPassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateAddress checks the checkout form; every field is required.
func (v *formValidator) ValidateAddress(in usecase.CheckoutInput) error {
	for _, f := range []string{in.FirstName, in.LastName, in.Street, in.City, in.ZipCode} {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidInput
		}
	}
	if !in.ShippingMethod.Valid() {
		return ErrInvalidShipping
	}
	return nil
}

func (v *formValidator) ValidateCoupon(code string, discountPercent int64) error {
	if model.NormalizeCouponCode(code) == "" {
		return ErrInvalidInput
	}
	if discountPercent < 1 || discountPercent > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// ValidateBan allows days == 0 (server-side default duration) but not negative.
func (v *formValidator) ValidateBan(days int, reason string) error {
	if days < 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(reason) == "" {
		return ErrInvalidInput
	}
	return nil
}

// simple email shape check
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
