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

// Poems are stored and moderated separately from stories even though the
// payloads look alike, so the handlers are kept parallel rather than
// merged.

type PoemInput struct {
	Name     string   `json:"name" binding:"required"`
	Language string   `json:"language"`
	Font     string   `json:"font"`
	Body     string   `json:"poem"`
	PDFURL   string   `json:"pdf_url"`
	Price    float64  `json:"price"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
}

type PoemUpdateInput struct {
	Name     *string  `json:"name"`
	Language *string  `json:"language"`
	Font     *string  `json:"font"`
	Body     *string  `json:"poem"`
	Price    *float64 `json:"price"`
	Tags     []string `json:"tags"`
}

func poemResponse(p *models.Poem, serial int) gin.H {
	out := gin.H{
		"id":         p.ID,
		"author_id":  p.WrittenBy,
		"name":       p.Name,
		"language":   p.Language,
		"font":       p.Font,
		"poem":       p.Body,
		"pdf_url":    p.PDFURL,
		"status":     p.Status,
		"price":      p.Price,
		"tags":       utils.SplitTags(p.Tags),
		"created_on": p.CreatedAt,
		"updated_on": p.UpdatedAt,
	}
	if serial > 0 {
		out["serial"] = serial
	}
	if p.Author.ID != 0 {
		out["author_name"] = p.Author.FullName
	}
	return out
}

// CreatePoem accepts JSON or a multipart form with an optional "pdf" file.
func CreatePoem(c *gin.Context) {
	var input PoemInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input.Name = c.PostForm("name")
		input.Language = c.PostForm("language")
		input.Font = c.PostForm("font")
		input.Body = c.PostForm("poem")
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

	poem := models.Poem{
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

	if err := config.DB.Create(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create poem"})
		return
	}

	ws.BroadcastContentStatus("poem", poem.ID, string(poem.Status))

	c.JSON(http.StatusCreated, gin.H{
		"message": "Poem created",
		"poem":    poemResponse(&poem, 0),
	})
}

// ListPoems returns all published poems, newest first.
func ListPoems(c *gin.Context) {
	var poems []models.Poem
	if err := config.DB.Preload("Author").
		Where("status = ?", models.StatusPublished).
		Order("created_at DESC").
		Find(&poems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch poems"})
		return
	}

	out := make([]gin.H, 0, len(poems))
	for i := range poems {
		out = append(out, poemResponse(&poems[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"poems": out, "count": len(out)})
}

// ListMyPoems returns the caller's poems in every status. Admins get the
// full table.
func ListMyPoems(c *gin.Context) {
	query := config.DB.Preload("Author").Order("updated_at DESC")
	if !callerIsAdmin(c) {
		query = query.Where("written_by = ?", callerID(c))
	}

	var poems []models.Poem
	if err := query.Find(&poems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch poems"})
		return
	}

	out := make([]gin.H, 0, len(poems))
	for i := range poems {
		out = append(out, poemResponse(&poems[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"poems": out, "count": len(out)})
}

// ListPoemsByUser returns one author's published poems.
func ListPoemsByUser(c *gin.Context) {
	var poems []models.Poem
	if err := config.DB.Preload("Author").
		Where("written_by = ? AND status = ?", c.Param("user_id"), models.StatusPublished).
		Order("created_at DESC").
		Find(&poems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch poems"})
		return
	}

	out := make([]gin.H, 0, len(poems))
	for i := range poems {
		out = append(out, poemResponse(&poems[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"poems": out, "count": len(out)})
}

// ListPoemDrafts returns unpublished poems, scoped to the caller unless the
// caller is an admin.
func ListPoemDrafts(c *gin.Context) {
	query := config.DB.Preload("Author").
		Where("status IN ?", []models.ContentStatus{models.StatusDraft, models.StatusPending}).
		Order("updated_at DESC")
	if !callerIsAdmin(c) {
		query = query.Where("written_by = ?", callerID(c))
	}

	var poems []models.Poem
	if err := query.Find(&poems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch drafts"})
		return
	}

	out := make([]gin.H, 0, len(poems))
	for i := range poems {
		out = append(out, poemResponse(&poems[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"poems": out, "count": len(out)})
}

func GetPoem(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.Preload("Author").First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	if poem.Status != models.StatusPublished && !models.MayModify(&poem, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot view this poem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"poem": poemResponse(&poem, 0)})
}

// UpdatePoem edits a draft poem owned by the caller.
func UpdatePoem(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	if !models.MayModify(&poem, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own poems"})
		return
	}

	if err := models.EnsureDraft(&poem, "edit poem"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input PoemUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		poem.Name = *input.Name
	}
	if input.Language != nil {
		poem.Language = *input.Language
	}
	if input.Font != nil {
		poem.Font = *input.Font
	}
	if input.Body != nil {
		poem.Body = *input.Body
	}
	if input.Price != nil {
		poem.Price = *input.Price
	}
	if input.Tags != nil {
		poem.Tags = utils.JoinTags(input.Tags)
	}

	if err := config.DB.Save(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update poem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poem updated", "poem": poemResponse(&poem, 0)})
}

func SubmitPoem(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	if !models.MayModify(&poem, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only submit your own poems"})
		return
	}

	if err := models.Submit(&poem); err != nil {
		var ite *models.InvalidTransitionError
		if errors.As(err, &ite) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot submit poem"})
		return
	}

	if err := config.DB.Save(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot submit poem"})
		return
	}

	ws.BroadcastContentStatus("poem", poem.ID, string(poem.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Poem submitted for review", "status": poem.Status})
}

func ApprovePoem(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	var input ApproveInput
	_ = c.ShouldBindJSON(&input)

	if err := models.Approve(&poem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price != nil {
		poem.Price = *input.Price
	}

	if err := config.DB.Save(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot approve poem"})
		return
	}

	ws.BroadcastContentStatus("poem", poem.ID, string(poem.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Poem approved", "status": poem.Status})
}

func RejectPoem(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	if err := models.Reject(&poem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot reject poem"})
		return
	}

	ws.BroadcastContentStatus("poem", poem.ID, string(poem.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Poem rejected", "status": poem.Status})
}

func DeletePoemDraft(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	if err := models.EnsureDraft(&poem, "delete poem"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.MayModify(&poem, callerID(c), callerIsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own poems"})
		return
	}

	if err := config.DB.Delete(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot delete poem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poem deleted"})
}

func DeletePoemPublished(c *gin.Context) {
	var poem models.Poem
	if err := config.DB.First(&poem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poem not found"})
		return
	}

	if err := models.EnsurePublished(&poem, "delete poem"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	if err := config.DB.Delete(&poem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot delete poem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poem deleted"})
}
