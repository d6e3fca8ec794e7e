package account

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please correct the errors below: " + err.Error()})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		var cnt int64
		db.Model(&models.Customer{}).Where("username = ?", req.Username).Count(&cnt)
		if cnt > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username taken"})
			return
		}
		db.Model(&models.Customer{}).Where("email = ?", req.Email).Count(&cnt)
		if cnt > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}

		hash, err := models.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		customer := models.Customer{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Address:      req.Address,
			Phone:        req.Phone,
		}
		if err := db.Create(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		if err := middleware.LogIn(c, customer.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
	}
}

// POST /login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fill all fields"})
			return
		}

		var customer models.Customer
		if err := db.Where("username = ?", strings.TrimSpace(req.Username)).First(&customer).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		if !models.CheckPassword(customer.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}

		if err := middleware.LogIn(c, customer.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "login successful"})
	}
}

// POST /logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := middleware.LogOut(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "you have been logged out"})
	}
}

// GET /me
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       customer.ID,
			"username": customer.Username,
			"email":    customer.Email,
			"address":  customer.Address,
			"phone":    customer.Phone,
		})
	}
}
