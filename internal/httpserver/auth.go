package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/service/identity"
)

// authRequired resolves the bearer token to a user and stores both on the
// request context. Requests without a valid session get 401.
func authRequired(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			errorJSON(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		token = strings.TrimSpace(token)

		user, err := deps.Identity.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				errorJSON(c, http.StatusUnauthorized, "session expired or invalid")
			} else {
				errorJSON(c, http.StatusInternalServerError, "authentication unavailable")
			}
			c.Abort()
			return
		}

		c.Set(ctxKeyUser, user)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

func signupHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in identity.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := deps.Identity.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				errorJSON(c, http.StatusConflict, "an account with this email already exists")
				return
			}
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errorJSON(c, http.StatusBadRequest, "email and password are required")
			return
		}

		user, token, err := deps.Identity.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				errorJSON(c, http.StatusUnauthorized, "invalid email or password")
				return
			}
			errorJSON(c, http.StatusInternalServerError, "login unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":      user,
			"token":     token,
			"expiresIn": deps.Identity.SessionTTLSeconds(),
		})
	}
}

func logoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if err := deps.Identity.Logout(c.Request.Context(), token); err != nil {
			errorJSON(c, http.StatusInternalServerError, "logout failed")
			return
		}
		// The session store dies with the session.
		deps.Stores.Drop(token)
		c.Status(http.StatusNoContent)
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
	}
}
