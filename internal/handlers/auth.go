package handlers

import (
	"errors"
	"net/http"

	"home_dashboard/internal/repository"
	"home_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errSignUpFailed = "failed to register operator"
	errSignInFailed = "failed to sign in"
)

// OperatorCredentials is the body of both sign-up and sign-in.
type OperatorCredentials struct {
	Username string `json:"username" binding:"required" example:"salon"`
	Password string `json:"password" binding:"required" example:"contraseña-segura"`
}

// @Summary      Register an operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      OperatorCredentials  true  "Credentials"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input OperatorCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	id, err := h.services.Authorization.SignUp(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, repository.ErrOperatorExists):
		c.JSON(http.StatusConflict, gin.H{"error": repository.ErrOperatorExists.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignUpFailed, "operator_sign_up_failed", err, "username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("operator_registered", "id", id)
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Sign in and get a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      OperatorCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input OperatorCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	token, err := h.services.Authorization.GenerateToken(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignInFailed, "operator_sign_in_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
