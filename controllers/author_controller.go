package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
)

type authorEntry struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	StoryCount int64  `json:"story_count"`
	PoemCount  int64  `json:"poem_count"`
	AudioCount int64  `json:"audio_count"`
	Total      int64  `json:"total_published"`
}

// GetAuthors is the public author directory. Supports ?q= name search and
// ?filter= one of recent, popular, story, poem, language (with
// ?language=). Counts cover published content only; audio counts are
// narrations linked to the author's stories or poems.
func GetAuthors(c *gin.Context) {
	query := config.DB.Where("role = ? AND is_active = ?", models.RoleWriter, true).
		Order("created_at DESC")

	if q := c.Query("q"); q != "" {
		query = query.Where("LOWER(full_name) LIKE LOWER(?)", "%"+q+"%")
	}

	var writers []models.User
	if err := query.Find(&writers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot fetch authors"})
		return
	}

	filter := c.Query("filter")
	language := c.Query("language")

	authors := make([]authorEntry, 0, len(writers))
	for _, w := range writers {
		entry := authorEntry{ID: w.ID, FullName: w.FullName}

		storyQ := config.DB.Model(&models.Story{}).
			Where("written_by = ? AND status = ?", w.ID, models.StatusPublished)
		poemQ := config.DB.Model(&models.Poem{}).
			Where("written_by = ? AND status = ?", w.ID, models.StatusPublished)
		if filter == "language" && language != "" {
			storyQ = storyQ.Where("LOWER(language) = LOWER(?)", language)
			poemQ = poemQ.Where("LOWER(language) = LOWER(?)", language)
		}
		storyQ.Count(&entry.StoryCount)
		poemQ.Count(&entry.PoemCount)

		config.DB.Model(&models.AudioStory{}).
			Where("status = ?", models.StatusPublished).
			Where(
				"linked_story_id IN (?) OR linked_poem_id IN (?)",
				config.DB.Model(&models.Story{}).Select("id").Where("written_by = ?", w.ID),
				config.DB.Model(&models.Poem{}).Select("id").Where("written_by = ?", w.ID),
			).
			Count(&entry.AudioCount)

		entry.Total = entry.StoryCount + entry.PoemCount + entry.AudioCount

		switch filter {
		case "story":
			if entry.StoryCount == 0 {
				continue
			}
		case "poem":
			if entry.PoemCount == 0 {
				continue
			}
		case "language":
			if entry.StoryCount+entry.PoemCount == 0 {
				continue
			}
		}

		authors = append(authors, entry)
	}

	if filter == "popular" {
		sort.SliceStable(authors, func(i, j int) bool {
			return authors[i].Total > authors[j].Total
		})
	}

	c.JSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}

// AuthorStats reports platform-wide publication totals.
func AuthorStats(c *gin.Context) {
	var writerCount, storyCount, poemCount, audioCount int64

	config.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleWriter, true).
		Count(&writerCount)
	config.DB.Model(&models.Story{}).
		Where("status = ?", models.StatusPublished).
		Count(&storyCount)
	config.DB.Model(&models.Poem{}).
		Where("status = ?", models.StatusPublished).
		Count(&poemCount)
	config.DB.Model(&models.AudioStory{}).
		Where("status = ?", models.StatusPublished).
		Count(&audioCount)

	c.JSON(http.StatusOK, gin.H{
		"authors":           writerCount,
		"published_stories": storyCount,
		"published_poems":   poemCount,
		"published_audio":   audioCount,
	})
}
