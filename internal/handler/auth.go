package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL sentinel errors
	"net/http"     // HTTP status codes and primitives
	"regexp"       // email shape validation
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls and date formatting

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/dkoval23/hotel-booking-api/internal/config"     // app configuration
	"github.com/dkoval23/hotel-booking-api/internal/model"      // persistence models
	"github.com/dkoval23/hotel-booking-api/internal/repository" // DB repositories
	"github.com/dkoval23/hotel-booking-api/internal/utils"      // hashing and token issuing
)

// emailRe is the shape check applied at signup: something@something.tld,
// no whitespace. Deliverability is not verified.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// minPasswordLen is the minimum accepted password length at signup.
const minPasswordLen = 6

// AuthHandler bundles dependencies for the signup and signin endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the public projection of a user. The password hash never
// appears in any response.
type userPart struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Signup: validate, hash and create the user, return it without the
// credential. Duplicate email is a conflict.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName, lastName, email and password are required"})
	}
	if !emailRe.MatchString(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	if len(req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters long"})
	}
	var phone *string
	if p := strings.TrimSpace(req.Phone); p != "" {
		phone = &p
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName),
		req.Email, req.Password, phone, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user already exists with this email"})
		}
		c.Logger().Errorf("signup: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create account"})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Signin: verify credentials and issue the 7-day signin token. Unknown
// email and wrong password produce the same response so the endpoint
// does not leak which accounts exist.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		c.Logger().Errorf("signin: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to login"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	token, err := utils.NewSigninToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.TokenTTLDays)
	if err != nil {
		c.Logger().Errorf("signin: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to login"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token.Token,
		"user":  toUserPart(u),
	})
}
