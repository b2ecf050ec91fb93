package rest

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/Shikharishere/api/auth"
	"github.com/Shikharishere/api/tokens"
)

const (
	// TextCodeConfirmationTokenInvalid identifies unusable confirmation
	// tokens, mostly corrupted links.
	TextCodeConfirmationTokenInvalid = "email_confirmation_token_invalid"
	// TextCodeConfirmationUserNotFound identifies confirmation tokens
	// issued for an email no user holds anymore.
	TextCodeConfirmationUserNotFound = "email_confirmation_user_not_found"
	// TextCodeConfirmationAlreadyConfirmed identifies repeat confirmations.
	TextCodeConfirmationAlreadyConfirmed = "email_confirmation_already_confirmed"
)

// Mailer delivers confirmation email. Delivery itself lives outside this
// core; handlers only hand the minted token over.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, username, token string) error
}

// EmailController serves the email confirmation endpoints.
type EmailController struct {
	cfg      auth.Config
	users    auth.UserStore
	resolver *auth.Resolver
	limiter  auth.RateLimiter
	mailer   Mailer
	logger   auth.Logger
}

// NewEmailController wires the confirmation endpoints.
func NewEmailController(cfg auth.Config, users auth.UserStore, resolver *auth.Resolver, rateLimiter auth.RateLimiter, mailer Mailer, logger auth.Logger) *EmailController {
	return &EmailController{
		cfg:      cfg,
		users:    users,
		resolver: resolver,
		limiter:  rateLimiter,
		mailer:   mailer,
		logger:   logger,
	}
}

// Register mounts the confirmation routes.
func (ec *EmailController) Register(app fiber.Router) {
	app.Get("/_emailConfirmation.confirm", ec.Confirm)
	app.Get("/_emailConfirmation.resend", ec.Resend)
}

// Confirm validates the confirmation token from the `cft` query parameter
// and flips the user's verification flag.
func (ec *EmailController) Confirm(c *fiber.Ctx) error {
	raw := c.Query("cft")

	token, err := tokens.DecodeVerified(raw, tokens.KindEmail, []byte(ec.cfg.EmailTokenSecret))
	if err != nil {
		return Error(c, confirmationTokenError(err))
	}

	user, err := ec.users.GetByID(c.UserContext(), token.UserID())
	if err != nil {
		return Error(c, err)
	}
	if user == nil {
		return Error(c, errors.New(
			"confirmation token was issued for email that does not refer to any existing user",
			errors.CategoryNotFound,
		).WithTextCode(TextCodeConfirmationUserNotFound).WithCode(errors.CodeNotFound))
	}
	if user.IsVerified {
		return Error(c, alreadyConfirmed())
	}

	if err := ec.users.EmailConfirm(c.UserContext(), user); err != nil {
		return Error(c, err)
	}

	return Success(c, fiber.Map{"email": user.Email, "confirmed": true})
}

// Resend mints a fresh confirmation token for the authenticated user and
// hands it to the mailer. Calls are rate limited per user.
func (ec *EmailController) Resend(c *fiber.Ctx) error {
	authCtx, err := ec.resolver.ResolveRequest(c.UserContext(), FromFiber(c), auth.Options{})
	if err != nil {
		return Error(c, err)
	}
	user := authCtx.User

	if user.IsVerified {
		return Error(c, alreadyConfirmed())
	}

	if err := ec.limiter.Check(c.UserContext(), user.Username); err != nil {
		return Error(c, err)
	}

	token, err := auth.IssueEmailToken(ec.cfg, user)
	if err != nil {
		return Error(c, err)
	}

	if err := ec.mailer.SendConfirmation(c.UserContext(), user.Email, user.Username, token); err != nil {
		ec.logger.Error("failed to send confirmation email to user %d: %s", user.ID, err)
		return Error(c, errors.Wrap(err, errors.CategoryInternal, "failed to send confirmation email"))
	}

	return Success(c, fiber.Map{"email": user.Email})
}

func confirmationTokenError(err error) error {
	message := "confirmation token is not valid, mostly due to corrupted link, try to resend confirmation"
	switch {
	case auth.HasTextCode(err, tokens.TextCodeTokenExpired):
		message = "confirmation token expired, try to resend confirmation"
	case auth.HasTextCode(err, tokens.TextCodeTokenWrongType):
		message = "expected token to be a confirmation token, not another type of token"
	}
	return errors.New(message, errors.CategoryAuth).
		WithTextCode(TextCodeConfirmationTokenInvalid).
		WithCode(errors.CodeBadRequest)
}

func alreadyConfirmed() error {
	return errors.New("confirmation is not required, email is already confirmed", errors.CategoryConflict).
		WithTextCode(TextCodeConfirmationAlreadyConfirmed).
		WithCode(errors.CodeConflict)
}
