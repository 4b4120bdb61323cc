package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// normalizeEmail trims and lowercases an address so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if len(email) > entity.MaxEmailLength || !emailPattern.MatchString(email) {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > entity.MaxNameLength {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidName,
			"name must be at most 100 characters",
			domainerror.ErrInvalidName,
		)
	}
	return nil
}

func weakPasswordError() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeWeakPassword,
		"password must be between 6 and 72 characters",
		domainerror.ErrWeakPassword,
	)
}
