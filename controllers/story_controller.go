package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/services"
	"github.com/kathamala/katha-backend/utils"
	"github.com/kathamala/katha-backend/ws"
)

// ====== INPUT STRUCTS ======
type StoryInput struct {
	Name     string   `json:"name" binding:"required"`
	Language string   `json:"language"`
	Font     string   `json:"font"`
	Body     string   `json:"story"`
	PDFURL   string   `json:"pdf_url"`
	Price    float64  `json:"price"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
}

type StoryUpdateInput struct {
	Name     *string  `json:"name"`
	Language *string  `json:"language"`
	Font     *string  `json:"font"`
	Body     *string  `json:"story"`
	Price    *float64 `json:"price"`
	Tags     []string `json:"tags"`
}

type ApproveInput struct {
	Price *float64 `json:"price"`
}

func storyResponse(s *models.Story, serial int) gin.H {
	out := gin.H{
		"id":         s.ID,
		"author_id":  s.WrittenBy,
		"name":       s.Name,
		"language":   s.Language,
		"font":       s.Font,
		"story":      s.Body,
		"pdf_url":    s.PDFURL,
		"status":     s.Status,
		"price":      s.Price,
		"tags":       utils.SplitTags(s.Tags),
		"created_on": s.CreatedAt,
		"updated_on": s.UpdatedAt,
	}
	if serial > 0 {
		out["serial"] = serial
	}
	if s.Author.ID != 0 {
		out["author_name"] = s.Author.FullName
	}
	return out
}

// CreateStory accepts either a JSON document or a multipart form with an
// optional "pdf" file. When a PDF is supplied and no body text is given,
// the text is extracted from the PDF.
func CreateStory(c *gin.Context) {
	var input StoryInput

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		input.Name = c.PostForm("name")
		input.Language = c.PostForm("language")
		input.Font = c.PostForm("font")
		input.Body = c.PostForm("story")
		input.Status = c.PostForm("status")
		input.Tags = utils.SplitTags(c.PostForm("tags"))

		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		if file, err := c.FormFile("pdf"); err == nil {
			url, err := utils.SaveUpload(file, "pdfs")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot save PDF: " + err.Error()})
				return
			}
			input.PDFURL = url

			if input.Body == "" {
				text, err := services.ExtractTextFromPDF(file)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read PDF: " + err.Error()})
					return
				}
				input.Body = text
			}
		}
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story := models.Story{
		WrittenBy: callerID(c),
		Name:      input.Name,
		Language:  input.Language,
		Font:      input.Font,
		Body:      input.Body,
		PDFURL:    input.PDFURL,
		Price:     input.Price,
		Status:    status,
		Tags:      utils.JoinTags(input.Tags),
	}

	if err := config.DB.Create(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create story"})
		return
	}

	ws.BroadcastContentStatus("story", story.ID, string(story.Status))

	c.JSON(http.StatusCreated, gin.H{
		"message": "Story created",
		"story":   storyResponse(&story, 0),
	})
}

// ListStories returns all published stories, newest first.
func ListStories(c *gin.Context) {
	var stories []models.Story
	if err := config.DB.Preload("Author").
		Where("status = ?", models.StatusPublished).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch stories"})
		return
	}

	out := make([]gin.H, 0, len(stories))
	for i := range stories {
		out = append(out, storyResponse(&stories[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"stories": out, "count": len(out)})
}

// ListMyStories returns the caller's stories in every status. Admins get
// the full table.
func ListMyStories(c *gin.Context) {
	query := config.DB.Preload("Author").Order("updated_at DESC")
	if !callerIsAdmin(c) {
		query = query.Where("written_by = ?", callerID(c))
	}

	var stories []models.Story
	if err := query.Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch stories"})
		return
	}

	out := make([]gin.H, 0, len(stories))
	for i := range stories {
		out = append(out, storyResponse(&stories[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"stories": out, "count": len(out)})
}

// ListStoriesByUser returns one author's published stories.
func ListStoriesByUser(c *gin.Context) {
	var stories []models.Story
	if err := config.DB.Preload("Author").
		Where("written_by = ? AND status = ?", c.Param("user_id"), models.StatusPublished).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch stories"})
		return
	}

	out := make([]gin.H, 0, len(stories))
	for i := range stories {
		out = append(out, storyResponse(&stories[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"stories": out, "count": len(out)})
}

// ListStoryDrafts returns unpublished stories. Admins see everything still
// in draft or pending; regular users see only their own.
func ListStoryDrafts(c *gin.Context) {
	query := config.DB.Preload("Author").
		Where("status IN ?", []models.ContentStatus{models.StatusDraft, models.StatusPending}).
		Order("updated_at DESC")
	if !callerIsAdmin(c) {
		query = query.Where("written_by = ?", callerID(c))
	}

	var stories []models.Story
	if err := query.Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch drafts"})
		return
	}

	out := make([]gin.H, 0, len(stories))
	for i := range stories {
		out = append(out, storyResponse(&stories[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"stories": out, "count": len(out)})
}

// GetStory returns a single story. Unpublished stories are visible only to
// their author or an admin.
func GetStory(c *gin.Context) {
	var story models.Story
	if err := config.DB.Preload("Author").First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	if story.Status != models.StatusPublished && !models.MayModify(&story, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot view this story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": storyResponse(&story, 0)})
}

// UpdateStory edits a draft. Only the author (or an admin) may edit, and
// only while the story is still a draft.
func UpdateStory(c *gin.Context) {
	var story models.Story
	if err := config.DB.First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	if !models.MayModify(&story, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own stories"})
		return
	}

	if err := models.EnsureDraft(&story, "edit story"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input StoryUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		story.Name = *input.Name
	}
	if input.Language != nil {
		story.Language = *input.Language
	}
	if input.Font != nil {
		story.Font = *input.Font
	}
	if input.Body != nil {
		story.Body = *input.Body
	}
	if input.Price != nil {
		story.Price = *input.Price
	}
	if input.Tags != nil {
		story.Tags = utils.JoinTags(input.Tags)
	}

	if err := config.DB.Save(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story updated", "story": storyResponse(&story, 0)})
}

// SubmitStory moves a draft into the moderation queue.
func SubmitStory(c *gin.Context) {
	var story models.Story
	if err := config.DB.First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	if !models.MayModify(&story, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only submit your own stories"})
		return
	}

	if err := models.Submit(&story); err != nil {
		var ite *models.InvalidTransitionError
		if errors.As(err, &ite) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot submit story"})
		return
	}

	if err := config.DB.Save(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot submit story"})
		return
	}

	ws.BroadcastContentStatus("story", story.ID, string(story.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Story submitted for review", "status": story.Status})
}

// ApproveStory publishes a pending story. Admin only; an optional price
// may be set at approval time.
func ApproveStory(c *gin.Context) {
	var story models.Story
	if err := config.DB.First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var input ApproveInput
	_ = c.ShouldBindJSON(&input)

	if err := models.Approve(&story); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price != nil {
		story.Price = *input.Price
	}

	if err := config.DB.Save(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot approve story"})
		return
	}

	ws.BroadcastContentStatus("story", story.ID, string(story.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Story approved", "status": story.Status})
}

// RejectStory pulls a published story back into the moderation queue.
func RejectStory(c *gin.Context) {
	var story models.Story
	if err := config.DB.First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	if err := models.Reject(&story); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot reject story"})
		return
	}

	ws.BroadcastContentStatus("story", story.ID, string(story.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Story rejected", "status": story.Status})
}

// DeleteStoryDraft removes a story that is still a draft. Authors may only
// delete their own.
func DeleteStoryDraft(c *gin.Context) {
	var story models.Story
	if err := config.DB.First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	if err := models.EnsureDraft(&story, "delete story"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.MayModify(&story, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own stories"})
		return
	}

	if err := config.DB.Delete(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot delete story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted"})
}

// DeleteStoryPublished removes a published story. Admin only.
func DeleteStoryPublished(c *gin.Context) {
	var story models.Story
	if err := config.DB.First(&story, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	if err := models.EnsurePublished(&story, "delete story"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	if err := config.DB.Delete(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot delete story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted"})
}
