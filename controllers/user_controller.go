package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
)

func userResponse(u *models.User, serial int) gin.H {
	out := gin.H{
		"id":          u.ID,
		"full_name":   u.FullName,
		"email":       u.Email,
		"mobile":      u.Mobile,
		"role":        u.Role,
		"is_active":   u.IsActive,
		"is_approved": u.IsApproved,
		"created_on":  u.CreatedAt,
		"updated_on":  u.UpdatedAt,
	}
	if serial > 0 {
		out["serial"] = serial
	}
	return out
}

// ListUsers returns all platform users, optionally filtered by ?role=.
func ListUsers(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch users"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"users": out, "count": len(out)})
}

type UserUpdateInput struct {
	FullName *string `json:"full_name"`
	Mobile   *string `json:"mobile"`
}

// UpdateUser edits a user's profile fields.
func UpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Mobile != nil {
		user.Mobile = *input.Mobile
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": userResponse(&user, 0)})
}

type UserStatusInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetUserStatus activates or deactivates a user account.
func SetUserStatus(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UserStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.IsActive = *input.IsActive
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "is_active": user.IsActive})
}

type UserApprovalInput struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// SetUserApproval approves (or revokes approval of) a writer. Approving a
// writer also activates the account so they can log in.
func SetUserApproval(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role != models.RoleWriter {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only writers require approval"})
		return
	}

	var input UserApprovalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.IsApproved = *input.IsApproved
	if user.IsApproved {
		user.IsActive = true
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update approval"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Approval updated", "is_approved": user.IsApproved})
}

// GetWriter is the public writer profile: name plus published-content
// counts, no contact details.
func GetWriter(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("role = ?", models.RoleWriter).
		First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Writer not found"})
		return
	}

	var storyCount, poemCount int64
	config.DB.Model(&models.Story{}).
		Where("written_by = ? AND status = ?", user.ID, models.StatusPublished).
		Count(&storyCount)
	config.DB.Model(&models.Poem{}).
		Where("written_by = ? AND status = ?", user.ID, models.StatusPublished).
		Count(&poemCount)

	c.JSON(http.StatusOK, gin.H{
		"writer": gin.H{
			"id":          user.ID,
			"full_name":   user.FullName,
			"story_count": storyCount,
			"poem_count":  poemCount,
			"member_since": user.CreatedAt,
		},
	})
}
