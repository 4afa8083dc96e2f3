package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/internal/user"
	"github.com/yultimate/pavilion/pkg/responses"
	"github.com/yultimate/pavilion/pkg/token"
)

// AuthController handles registration, login and profile reads.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: cfg}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"max=120"`
	Role     string `json:"role" binding:"omitempty,oneof=player coach manager admin"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Username or email already taken"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if existing, err := ac.repo.FindUserByUsername(req.Username); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check username: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "Username already taken")
		return
	}
	if existing, err := ac.repo.FindUserByEmail(req.Email); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check email: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "Email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := req.Role
	if role == "" {
		role = user.RolePlayer
	}

	u := user.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
		Role:     role,
	}
	if err := ac.repo.CreateUser(&u); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create user: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", gin.H{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
	})
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	u, err := ac.repo.FindUserByUsername(req.Username)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to look up user: "+err.Error())
		return
	}
	if u == nil {
		responses.SendError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	jwt, err := token.GenerateJWT(u.ID, u.Role, ac.appConfig.JWT.Secret, ac.appConfig.JWT.ExpiryMinutes)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", gin.H{
		"access_token": jwt,
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
		},
	})
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=user.User}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/profile [get]
// @Security BearerAuth
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := ac.repo.FindUserByID(userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch profile: "+err.Error())
		return
	}
	if u == nil {
		responses.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", u)
}
