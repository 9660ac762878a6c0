package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/services"
	"github.com/kathamala/katha-backend/utils"
	"github.com/kathamala/katha-backend/ws"
)

var allowedAudioExt = map[string]bool{".mp3": true, ".wav": true, ".m4a": true}

func audioResponse(a *models.AudioStory, serial int) gin.H {
	out := gin.H{
		"id":           a.ID,
		"created_by":   a.CreatedBy,
		"name":         a.Name,
		"language":     a.Language,
		"link_type":    a.LinkType,
		"audio_url":    a.AudioURL,
		"duration_sec": a.DurationSec,
		"status":       a.Status,
		"tags":         utils.SplitTags(a.Tags),
		"created_on":   a.CreatedAt,
		"updated_on":   a.UpdatedAt,
	}
	if a.LinkedStoryID != nil {
		out["linked_story_id"] = *a.LinkedStoryID
	}
	if a.LinkedPoemID != nil {
		out["linked_poem_id"] = *a.LinkedPoemID
	}
	if serial > 0 {
		out["serial"] = serial
	}
	if a.Creator.ID != 0 {
		out["creator_name"] = a.Creator.FullName
	}
	return out
}

// CreateAudioStory records a narrated piece. Admin only, multipart form
// with an "audio" file. An audio story may stand alone or link to an
// existing published story or poem.
func CreateAudioStory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	linkType := models.AudioLinkType(c.PostForm("link_type"))
	if linkType == "" {
		linkType = models.AudioLinkNone
	}

	audio := models.AudioStory{
		CreatedBy: callerID(c),
		Name:      name,
		Language:  c.PostForm("language"),
		LinkType:  linkType,
		Tags:      utils.JoinTags(utils.SplitTags(c.PostForm("tags"))),
	}

	switch linkType {
	case models.AudioLinkNone:
	case models.AudioLinkStory:
		id, err := strconv.ParseUint(c.PostForm("linked_story_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "linked_story_id is required for link_type 'story'"})
			return
		}
		var story models.Story
		if err := config.DB.First(&story, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Linked story not found"})
			return
		}
		sid := uint(id)
		audio.LinkedStoryID = &sid
	case models.AudioLinkPoem:
		id, err := strconv.ParseUint(c.PostForm("linked_poem_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "linked_poem_id is required for link_type 'poem'"})
			return
		}
		var poem models.Poem
		if err := config.DB.First(&poem, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Linked poem not found"})
			return
		}
		pid := uint(id)
		audio.LinkedPoemID = &pid
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "link_type must be one of none, story, poem"})
		return
	}

	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAudioExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio must be mp3, wav or m4a"})
		return
	}

	if ext == ".mp3" {
		if dur, err := services.GetMP3Duration(file); err == nil {
			audio.DurationSec = int(dur)
		}
	}

	url, err := utils.SaveUpload(file, "audio")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot save audio: " + err.Error()})
		return
	}
	audio.AudioURL = url

	status, err := resolveStatus(c.PostForm("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	audio.Status = status

	if err := config.DB.Create(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot create audio story"})
		return
	}

	ws.BroadcastContentStatus("audio", audio.ID, string(audio.Status))

	c.JSON(http.StatusCreated, gin.H{
		"message": "Audio story created",
		"audio":   audioResponse(&audio, 0),
	})
}

// ListAudioStories returns published audio stories, newest first.
func ListAudioStories(c *gin.Context) {
	var audios []models.AudioStory
	if err := config.DB.Preload("Creator").
		Where("status = ?", models.StatusPublished).
		Order("created_at DESC").
		Find(&audios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch audio stories"})
		return
	}

	out := make([]gin.H, 0, len(audios))
	for i := range audios {
		out = append(out, audioResponse(&audios[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"audio_stories": out, "count": len(out)})
}

// ListAllAudioStories returns every audio story regardless of status, for
// the admin table.
func ListAllAudioStories(c *gin.Context) {
	var audios []models.AudioStory
	if err := config.DB.Preload("Creator").
		Order("updated_at DESC").
		Find(&audios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch audio stories"})
		return
	}

	out := make([]gin.H, 0, len(audios))
	for i := range audios {
		out = append(out, audioResponse(&audios[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"audio_stories": out, "count": len(out)})
}

// ListAudioDrafts returns unpublished audio stories. All admins see the
// full queue since only admins create audio.
func ListAudioDrafts(c *gin.Context) {
	var audios []models.AudioStory
	if err := config.DB.Preload("Creator").
		Where("status IN ?", []models.ContentStatus{models.StatusDraft, models.StatusPending}).
		Order("updated_at DESC").
		Find(&audios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch drafts"})
		return
	}

	out := make([]gin.H, 0, len(audios))
	for i := range audios {
		out = append(out, audioResponse(&audios[i], i+1))
	}
	c.JSON(http.StatusOK, gin.H{"audio_stories": out, "count": len(out)})
}

func GetAudioStory(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.Preload("Creator").First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if audio.Status != models.StatusPublished && !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot view this audio story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio": audioResponse(&audio, 0)})
}

type AudioUpdateInput struct {
	Name     *string  `json:"name"`
	Language *string  `json:"language"`
	Tags     []string `json:"tags"`
}

// UpdateAudioStory edits metadata of a draft audio story.
func UpdateAudioStory(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if err := models.EnsureDraft(&audio, "edit audio story"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input AudioUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		audio.Name = *input.Name
	}
	if input.Language != nil {
		audio.Language = *input.Language
	}
	if input.Tags != nil {
		audio.Tags = utils.JoinTags(input.Tags)
	}

	if err := config.DB.Save(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot update audio story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audio story updated", "audio": audioResponse(&audio, 0)})
}

func SubmitAudioStory(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if err := models.Submit(&audio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot submit audio story"})
		return
	}

	ws.BroadcastContentStatus("audio", audio.ID, string(audio.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Audio story submitted for review", "status": audio.Status})
}

func ApproveAudioStory(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if err := models.Approve(&audio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot approve audio story"})
		return
	}

	ws.BroadcastContentStatus("audio", audio.ID, string(audio.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Audio story approved", "status": audio.Status})
}

func RejectAudioStory(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if err := models.Reject(&audio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot reject audio story"})
		return
	}

	ws.BroadcastContentStatus("audio", audio.ID, string(audio.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Audio story rejected", "status": audio.Status})
}

func DeleteAudioDraft(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if err := models.EnsureDraft(&audio, "delete audio story"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Delete(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot delete audio story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audio story deleted"})
}

func DeleteAudioPublished(c *gin.Context) {
	var audio models.AudioStory
	if err := config.DB.First(&audio, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio story not found"})
		return
	}

	if err := models.EnsurePublished(&audio, "delete audio story"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Delete(&audio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot delete audio story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audio story deleted"})
}
