package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/utils"
)

func adminResponse(a *models.Admin, serial int) gin.H {
	out := gin.H{
		"id":         a.ID,
		"full_name":  a.FullName,
		"email":      a.Email,
		"mobile":     a.Mobile,
		"role":       a.Role,
		"language":   a.Language,
		"status":     a.Status,
		"created_on": a.CreatedAt,
		"updated_on": a.UpdatedAt,
	}
	if serial > 0 {
		out["serial"] = serial
	}
	return out
}

func isSuperAdmin(c *gin.Context) bool {
	return callerIsAdmin(c) && c.GetString("role") == string(models.RoleSuperAdmin)
}

// GetAdminProfile returns the caller's own admin record.
func GetAdminProfile(c *gin.Context) {
	var admin models.Admin
	if err := config.DB.First(&admin, "id = ?", callerID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": adminResponse(&admin, 0)})
}

type AdminUpdateInput struct {
	FullName *string `json:"full_name"`
	Mobile   *string `json:"mobile"`
	Language *string `json:"language"`
}

// UpdateAdmin edits an admin profile. Admins may edit themselves; a
// super_admin may edit anyone.
func UpdateAdmin(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("admin_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin id"})
		return
	}

	if uint(targetID) != callerID(c) && !isSuperAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own profile"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	var input AdminUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FullName != nil {
		admin.FullName = *input.FullName
	}
	if input.Mobile != nil {
		admin.Mobile = *input.Mobile
	}
	if input.Language != nil {
		admin.Language = *input.Language
	}

	if err := config.DB.Save(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "admin": adminResponse(&admin, 0)})
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangeAdminPassword lets an admin rotate their own password.
func ChangeAdminPassword(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("admin_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin id"})
		return
	}

	if uint(targetID) != callerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own password"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot hash password"})
		return
	}

	admin.Password = string(hashed)
	if err := config.DB.Save(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

type AdminStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// SetAdminStatus toggles an admin Active/Inactive. Routed super-admin
// only; a super_admin cannot deactivate themselves.
func SetAdminStatus(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("admin_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin id"})
		return
	}

	if uint(targetID) == callerID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own status"})
		return
	}

	var input AdminStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status != models.AdminStatusActive && input.Status != models.AdminStatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be 'Active' or 'Inactive'"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	admin.Status = input.Status
	if err := config.DB.Save(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": admin.Status})
}

type SubAdminInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Language string `json:"language"`
	Password string `json:"password"`
}

// CreateSubAdmin provisions a sub-admin account. If no password is given
// one is generated; credentials are mailed to the new admin either way.
func CreateSubAdmin(c *gin.Context) {
	var input SubAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Admin
	if err := config.DB.Where("email = ? OR mobile = ?", input.Email, input.Mobile).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An admin with this email or mobile already exists"})
		return
	}

	password := input.Password
	if password == "" {
		password = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot hash password"})
		return
	}

	subAdmin := models.Admin{
		FullName: input.FullName,
		Email:    input.Email,
		Mobile:   input.Mobile,
		Password: string(hashed),
		Role:     models.RoleSubAdmin,
		Language: input.Language,
		Status:   models.AdminStatusActive,
	}

	if err := config.DB.Create(&subAdmin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create sub-admin"})
		return
	}

	go func(to, name, pass string) {
		body := `
		<h3>Hello ` + name + `,</h3>
		<p>A moderator account has been created for you on Kathamala.</p>
		<p><b>Email:</b> ` + to + `<br><b>Password:</b> ` + pass + `</p>
		<p>Please log in and change your password.</p>
		<hr>
		<p><i>This is an automated email, please do not reply.</i></p>
		`
		if err := utils.SendEmail(to, "Your Kathamala moderator account", body); err != nil {
			log.Println("sending credentials email failed:", err)
		}
	}(subAdmin.Email, subAdmin.FullName, password)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Sub-admin created, credentials emailed",
		"admin_id": subAdmin.ID,
	})
}

// ListSubAdmins returns all sub-admin accounts.
func ListSubAdmins(c *gin.Context) {
	var admins []models.Admin
	if err := config.DB.Where("role = ?", models.RoleSubAdmin).
		Order("created_at DESC").
		Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch sub-admins"})
		return
	}

	out := make([]gin.H, 0, len(admins))
	for i := range admins {
		out = append(out, adminResponse(&admins[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"sub_admins": out, "count": len(out)})
}

// GetSubAdmin returns a single sub-admin.
func GetSubAdmin(c *gin.Context) {
	var admin models.Admin
	if err := config.DB.Where("role = ?", models.RoleSubAdmin).
		First(&admin, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sub-admin not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": adminResponse(&admin, 0)})
}

// UpdateSubAdmin edits a sub-admin's profile fields.
func UpdateSubAdmin(c *gin.Context) {
	var admin models.Admin
	if err := config.DB.Where("role = ?", models.RoleSubAdmin).
		First(&admin, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sub-admin not found"})
		return
	}

	var input AdminUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FullName != nil {
		admin.FullName = *input.FullName
	}
	if input.Mobile != nil {
		admin.Mobile = *input.Mobile
	}
	if input.Language != nil {
		admin.Language = *input.Language
	}

	if err := config.DB.Save(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update sub-admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-admin updated", "admin": adminResponse(&admin, 0)})
}

type AdminCreateUserInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"roles" binding:"required"`
}

// AdminCreateUser lets an admin register a user directly. Writers created
// this way are approved immediately.
func AdminCreateUser(c *gin.Context) {
	var input AdminCreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.UserRole(strings.ToLower(input.Role))
	if role != models.RoleReader && role != models.RoleWriter {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'reader' or 'writer'"})
		return
	}

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

	user := models.User{
		FullName:   input.FullName,
		Email:      input.Email,
		Mobile:     input.Mobile,
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
		IsApproved: role == models.RoleWriter,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user_id": user.ID})
}
