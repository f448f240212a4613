package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (ctrl *UserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.userService.ListUsers()
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.InternalError(c, "Failed to fetch users")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{ID: u.ID, Username: u.Username, Role: string(u.Role)})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"users": out,
	})
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Username and password are required")
		return
	}

	user, err := ctrl.userService.CreateUser(req.Username, req.Password, model.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Username is required")
		case errors.Is(err, service.ErrPasswordRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Password is required")
		case errors.Is(err, service.ErrUsernameExists):
			apperrors.Conflict(c, apperrors.AuthUsernameExists, "Username is already taken")
		default:
			log.Error("Failed to create user", err, map[string]interface{}{
				"username": req.Username,
			})
			apperrors.InternalError(c, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":   true,
		"user": UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}

func (ctrl *UserController) UpdatePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Password is required")
		return
	}

	user, err := ctrl.userService.UpdateUserPassword(id, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrPasswordRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Password is required")
		default:
			log.Error("Failed to update user password", err, map[string]interface{}{
				"user_id": id,
			})
			apperrors.InternalError(c, "Failed to update password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"user": UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}
