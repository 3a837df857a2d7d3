package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

type AuthHTTPHandler struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

func NewAuthHTTPHandler(db *gorm.DB, tokenTTLHours int) *AuthHTTPHandler {
	if tokenTTLHours <= 0 {
		tokenTTLHours = 24
	}
	return &AuthHTTPHandler{
		db:       db,
		tokenTTL: time.Duration(tokenTTLHours) * time.Hour,
	}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      string `json:"role"`
}

func (s *AuthHTTPHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := req.Role
	if role == "" {
		role = "cashier"
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(pwHash),
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      role,
		IsActive:  true,
	}

	if err := s.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		fail(c, http.StatusBadRequest, "Failed to create user: "+err.Error())
		return
	}

	token, exp, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": exp,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthHTTPHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var user models.User
	if err := s.db.WithContext(c.Request.Context()).Where("username = ?", req.Username).First(&user).Error; err != nil {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !user.IsActive {
		fail(c, http.StatusUnauthorized, "Account is disabled")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, exp, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	_ = s.db.WithContext(c.Request.Context()).Save(&user).Error

	success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": exp,
	})
}
