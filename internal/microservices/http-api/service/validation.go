package service

import (
	"regexp"
	"strings"

	"yamdb/internal/microservices/http-api/models"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

func validateEmail(email string) error {
	if validate.Var(email, "required,email,max=255") != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validateSlug(slug string) error {
	if validate.Var(slug, "required,max=50,slug") != nil {
		return invalidf("slug %q must be 1-50 letters, digits, hyphens or underscores", slug)
	}
	return nil
}

func validateUsername(username string) error {
	if validate.Var(username, "required,max=150,slug") != nil {
		return invalidf("username %q must be 1-150 letters, digits, hyphens or underscores", username)
	}
	if username == models.MeAlias {
		return invalidf("username %q is reserved", models.MeAlias)
	}
	return nil
}

func validateRole(role models.Role) error {
	if !role.Valid() {
		return invalidf("role %q is not one of user, moderator, admin", role)
	}
	return nil
}

// normalizeEmail trims the address and lower-cases its domain part.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
