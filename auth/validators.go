package auth

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/Shikharishere/api/store"
)

const (
	usernameLengthMin = 5
	usernameLengthMax = 16
	passwordLengthMin = 6
	passwordLengthMax = 64
)

// ValidateSignupFields checks the signup preconditions in a fixed order,
// short-circuiting on the first violated rule: email taken, username
// taken, email format, username length, username charset, username case,
// password length.
func ValidateSignupFields(ctx context.Context, users UserStore, cfg Config, username, email, password string) error {
	taken, err := users.EmailIsTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	taken, err = users.UsernameIsTaken(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	if cfg.SignupValidateEmail {
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			return ErrEmailInvalid
		}
	}

	if utf8.RuneCountInString(username) < usernameLengthMin {
		return usernameInvalid("username should be longer than 4")
	}
	if utf8.RuneCountInString(username) > usernameLengthMax {
		return usernameInvalid("username should be shorter than 17")
	}
	if cfg.SignupRejectNonAlpha && !isAlpha(username) {
		return usernameInvalid("username should only contain alphabet characters")
	}
	if cfg.SignupRejectUppercase && username != strings.ToLower(username) {
		return usernameInvalid("username should only contain lowercase characters")
	}

	if utf8.RuneCountInString(password) < passwordLengthMin {
		return passwordInvalid("password should be longer than 5")
	}
	if utf8.RuneCountInString(password) > passwordLengthMax {
		return passwordInvalid("password should be shorter than 65")
	}

	return nil
}

// ValidateSigninFields checks the supplied password against the stored
// hash. A missing user and a wrong password return the identical error so
// callers cannot be used as a user-enumeration oracle.
func ValidateSigninFields(hasher PasswordHasher, user *store.User, password string) error {
	if user == nil || hasher.Compare(password, user.PasswordHash) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}
