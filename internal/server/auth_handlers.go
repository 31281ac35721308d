package server

import (
	"errors"
	"log/slog"
	"time"

	"babel/internal/auth"
	"babel/internal/middleware"
	"babel/internal/models"
	"babel/internal/observability"
	"babel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// setSessionCookie attaches a freshly issued session token to the response.
// HttpOnly keeps it away from scripts, SameSite=Strict stops cross-site
// sends; Secure is only off outside production so local HTTP works.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

// recordAuthFailure classifies a gate failure for metrics and logs. The
// response body never carries this detail.
func recordAuthFailure(c *fiber.Ctx, cause error) {
	reason := "user_lookup"
	switch {
	case errors.Is(cause, auth.ErrMissingToken):
		reason = "missing"
	case errors.Is(cause, auth.ErrMalformedToken):
		reason = "malformed"
	case errors.Is(cause, auth.ErrInvalidSignature):
		reason = "bad_signature"
	case errors.Is(cause, auth.ErrExpiredToken):
		reason = "expired"
	}
	observability.AuthFailures.WithLabelValues(reason).Inc()
	middleware.Logger.WarnContext(c.UserContext(), "authentication rejected",
		slog.String("reason", reason),
		slog.String("path", c.Path()),
	)
}

// issueSession mints a token for the user and sets the cookie.
func (s *Server) issueSession(c *fiber.Ctx, userID uint) error {
	token, err := s.issuer.Issue(userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	s.setSessionCookie(c, token)
	return nil
}

// Signup handles POST /api/auth/signup
// @Summary Create account
// @Description Register a new user account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Signup request"
// @Success 201 {object} object{success=bool,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("All fields are required"))
	}

	user, err := s.userService.CreateAccount(c.UserContext(), req)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate with email and password and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.VerifyCredentials(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Clear the session cookie. Previously issued tokens stay valid
// @Description until they expire; there is no server-side revocation list.
// @Tags auth
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

// Onboard handles POST /api/auth/onboarding
// @Summary Complete onboarding
// @Description Fill in the profile fields required before the account joins recommendations
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.OnboardingInput true "Profile fields"
// @Success 200 {object} object{success=bool,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/onboarding [post]
// @Security ApiKeyAuth
func (s *Server) Onboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.OnboardingInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Onboard(c.UserContext(), userID, req)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetMe handles GET /api/auth/me
// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} object{success=bool,user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
// @Security ApiKeyAuth
func (s *Server) GetMe(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
