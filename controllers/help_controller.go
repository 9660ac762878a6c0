package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
)

type HelpSupportInput struct {
	SupportType string `json:"support_type" binding:"required"`
}

// CreateHelpSupport opens a support ticket for the calling user.
func CreateHelpSupport(c *gin.Context) {
	if callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only users can open support tickets"})
		return
	}

	var input HelpSupportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket := models.HelpSupport{
		SupportType: input.SupportType,
		UserID:      callerID(c),
		Status:      models.HelpStatusPending,
	}

	if err := config.DB.Create(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create ticket"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Support request submitted", "ticket_id": ticket.ID})
}

// ListHelpSupport returns all tickets as rows for the admin table:
// [serial, id, support type, requester name, status, created_on].
func ListHelpSupport(c *gin.Context) {
	query := config.DB.Preload("User").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []models.HelpSupport
	if err := query.Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch tickets"})
		return
	}

	rows := make([][]interface{}, 0, len(tickets))
	for i, t := range tickets {
		rows = append(rows, []interface{}{
			i + 1, t.ID, t.SupportType, t.User.FullName, t.Status, t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GetHelpSupport returns one ticket with its requester.
func GetHelpSupport(c *gin.Context) {
	var ticket models.HelpSupport
	if err := config.DB.Preload("User").First(&ticket, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket": gin.H{
			"id":           ticket.ID,
			"support_type": ticket.SupportType,
			"status":       ticket.Status,
			"admin_note":   ticket.AdminNote,
			"created_on":   ticket.CreatedAt,
			"updated_on":   ticket.UpdatedAt,
			"user": gin.H{
				"id":        ticket.User.ID,
				"full_name": ticket.User.FullName,
				"email":     ticket.User.Email,
				"mobile":    ticket.User.Mobile,
			},
		},
	})
}

type HelpNoteInput struct {
	AdminNote string `json:"admin_note"`
}

func closeTicket(c *gin.Context, status string, noteRequired bool) {
	var ticket models.HelpSupport
	if err := config.DB.First(&ticket, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}

	if ticket.Status != models.HelpStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticket is already " + ticket.Status})
		return
	}

	var input HelpNoteInput
	_ = c.ShouldBindJSON(&input)
	if noteRequired && input.AdminNote == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A note is required when rejecting a ticket"})
		return
	}

	ticket.Status = status
	ticket.AdminNote = input.AdminNote
	if err := config.DB.Save(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket " + status, "status": ticket.Status})
}

// ResolveHelpSupport marks a pending ticket resolved, with an optional note.
func ResolveHelpSupport(c *gin.Context) {
	closeTicket(c, models.HelpStatusResolved, false)
}

// RejectHelpSupport rejects a pending ticket. A note explaining why is
// required.
func RejectHelpSupport(c *gin.Context) {
	closeTicket(c, models.HelpStatusRejected, true)
}
