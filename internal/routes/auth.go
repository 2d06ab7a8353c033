package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
)

func (h *Handler) StaffLogin(c *gin.Context) {
	var body contracts.StaffLoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	session, err := h.AuthService.LoginStaff(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.StaffLoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

func (h *Handler) ClientLogin(c *gin.Context) {
	var body contracts.ClientLoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	session, err := h.AuthService.LoginClient(c.Request.Context(), body.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ClientLoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Client:    session.Client,
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var body contracts.UserCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	u := &user.User{
		Username: body.Username,
		FullName: body.FullName,
		Password: body.Password,
		Role:     user.Role(body.Role),
		Phone:    body.Phone,
	}

	if err := h.UserService.Create(c.Request.Context(), u); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.UserResponse{
		Message: "Usuario creado correctamente",
		User:    u,
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var body contracts.ChangePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.UserService.UpdatePassword(c.Request.Context(), userID, body.CurrentPassword, body.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Contraseña actualizada correctamente"})
}

func (h *Handler) Me(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.UserService.GetById(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserResponse{User: u})
}
