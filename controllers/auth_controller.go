package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/services"
	"github.com/kathamala/katha-backend/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"roles" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"roles" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ====== HANDLERS ======

// Register creates a reader or writer account. The same email may hold one
// account per role; readers are active immediately, writers wait for
// approval.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.UserRole(strings.ToLower(input.Role))
	if role != models.RoleReader && role != models.RoleWriter {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'reader' or 'writer'"})
		return
	}

	// One account per (email, role)
	var existing models.User
	if err := config.DB.Where("email = ? AND role = ?", input.Email, role).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered with role '" + string(role) + "' using this email"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot hash password"})
		return
	}

	newUser := models.User{
		FullName:   input.FullName,
		Email:      input.Email,
		Mobile:     input.Mobile,
		Password:   string(hashed),
		Role:       role,
		IsActive:   role == models.RoleReader,
		IsApproved: false,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: possible duplicate entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully as " + string(role),
		"user_id": newUser.ID,
	})
}

// Login authenticates a (email, role) account and returns a user token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.UserRole(strings.ToLower(input.Role))

	var user models.User
	if err := config.DB.Where("email = ? AND role = ?", input.Email, role).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), utils.KindUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"full_name":   user.FullName,
			"role":        user.Role,
			"is_active":   user.IsActive,
			"is_approved": user.IsApproved,
		},
	})
}

// AdminLogin authenticates a back-office account and returns an admin
// token carrying super_admin or sub_admin in its claims.
func AdminLogin(c *gin.Context) {
	var input AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if admin.Status != models.AdminStatusActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	token, err := utils.GenerateToken(admin.ID, string(admin.Role), utils.KindAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"admin_id": admin.ID,
		"role":     admin.Role,
	})
}

// Logout revokes the presented token for the remainder of its lifetime.
func Logout(c *gin.Context) {
	tokenString := c.GetString("token")
	claims, err := utils.VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := services.Revoker.Revoke(tokenString, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot revoke token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// AuthCheck reports whether the caller may use the platform. A writer that
// has not been approved yet authenticates but is still locked out.
func AuthCheck(c *gin.Context) {
	id := callerID(c)

	if callerIsAdmin(c) {
		c.JSON(http.StatusOK, gin.H{
			"authenticated": true,
			"admin_id":      id,
			"role":          c.GetString("role"),
		})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	if !user.IsActive || (user.Role == models.RoleWriter && !user.IsApproved) {
		c.JSON(http.StatusForbidden, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user_id":       user.ID,
		"role":          user.Role,
		"is_active":     user.IsActive,
		"is_approved":   user.IsApproved,
	})
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword sends a reset mail. The response is the same whether or
// not the address exists, to avoid leaking registered emails.
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err == nil {
		go func(to, name string) {
			body := `
			<h3>Hello ` + name + `,</h3>
			<p>We received a request to reset the password of your Kathamala account.</p>
			<p>Please contact support to complete the reset.</p>
			<hr>
			<p><i>This is an automated email, please do not reply.</i></p>
			`
			if err := utils.SendEmail(to, "Kathamala password reset", body); err != nil {
				log.Println("sending reset email failed:", err)
			}
		}(user.Email, user.FullName)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset link sent to " + input.Email})
}
