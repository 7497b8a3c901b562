package handler

import (
	"errors"
	"net/http"
	"time"

	"givehope/domain"
	"givehope/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an admin account. The first signup is always allowed so a
// fresh deployment can bootstrap itself; after that the endpoint is gated.
func (h *Handler) Signup(c echo.Context) error {
	count, err := h.Store.CountUsers()
	if err != nil {
		c.Logger().Errorf("signup count error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	if count > 0 && !h.EnableSignup {
		return respondError(c, http.StatusForbidden, "Sign up has been disabled")
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email and password are required")
	}
	if err := (domain.User{Email: req.Email}).ValidateEmail(); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	user, err := h.Store.CreateUser(req.Email, string(hashedPassword), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return respondError(c, http.StatusBadRequest, "User already exists")
		}
		c.Logger().Errorf("signup error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

// Login checks credentials and issues a bearer token carrying the admin role
// claim the verifier looks for.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email and password are required")
	}

	user, hashedPassword, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusBadRequest, "Wrong email or password")
		}
		c.Logger().Errorf("login error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		return respondError(c, http.StatusBadRequest, "Wrong email or password")
	}

	token, err := h.accessToken(user)
	if err != nil {
		c.Logger().Errorf("login token error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"access_token": token,
		"user":         user,
	})
}

func (h *Handler) accessToken(user domain.User) (string, error) {
	if h.JWTSecret == "" {
		return "", errors.New("no secret defined")
	}
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"name": user.Name,
			"role": "admin",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
