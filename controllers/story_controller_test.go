package controllers_test

import (
	"net/http"
	"testing"

	"github.com/kathamala/katha-backend/models"
)

func TestCreateStoryDefaultsToDraft(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)

	w := doJSON(t, r, http.MethodPost, "/api/story", token, map[string]interface{}{
		"name":     "The Winter Tale",
		"language": "english",
		"story":    "Once upon a time.",
		"tags":     []string{"folk", "winter"},
	})
	expectStatus(t, w, http.StatusCreated)

	var story models.Story
	if err := db.Where("written_by = ?", writer.ID).First(&story).Error; err != nil {
		t.Fatalf("story not persisted: %v", err)
	}
	if story.Status != models.StatusDraft {
		t.Errorf("expected draft status, got %q", story.Status)
	}
	if story.Tags != "folk,winter" {
		t.Errorf("expected joined tags, got %q", story.Tags)
	}
}

func TestCreateStoryConfiguredDefaultStatus(t *testing.T) {
	db, r := setupServer(t)
	t.Setenv("CONTENT_DEFAULT_STATUS", "published")
	writer, token := createUser(t, db, models.RoleWriter, true, true)

	w := doJSON(t, r, http.MethodPost, "/api/story", token, map[string]interface{}{
		"name":  "The Winter Tale",
		"story": "Once upon a time.",
	})
	expectStatus(t, w, http.StatusCreated)

	var story models.Story
	db.Where("written_by = ?", writer.ID).First(&story)
	if story.Status != models.StatusPublished {
		t.Errorf("expected published status from config, got %q", story.Status)
	}
}

func TestCreateStoryRejectsUnknownStatus(t *testing.T) {
	db, r := setupServer(t)
	_, token := createUser(t, db, models.RoleWriter, true, true)

	w := doJSON(t, r, http.MethodPost, "/api/story", token, map[string]interface{}{
		"name":   "The Winter Tale",
		"status": "archived",
	})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestApproveStoryRequiresAdmin(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)
	story := createStory(t, db, writer.ID, models.StatusPending)

	w := doJSON(t, r, http.MethodPost, "/api/story/1/approve", token, nil)
	expectStatus(t, w, http.StatusForbidden)

	db.First(story, story.ID)
	if story.Status != models.StatusPending {
		t.Errorf("status changed on unauthorized approve: %q", story.Status)
	}
}

func TestApproveStoryFromPending(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	story := createStory(t, db, writer.ID, models.StatusPending)

	w := doJSON(t, r, http.MethodPost, "/api/story/1/approve", adminToken, map[string]interface{}{
		"price": 49.0,
	})
	expectStatus(t, w, http.StatusOK)

	db.First(story, story.ID)
	if story.Status != models.StatusPublished {
		t.Errorf("expected published, got %q", story.Status)
	}
	if story.Price != 49.0 {
		t.Errorf("expected price set on approval, got %v", story.Price)
	}
}

func TestApproveStoryFromDraftFails(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	story := createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodPost, "/api/story/1/approve", adminToken, nil)
	expectStatus(t, w, http.StatusBadRequest)

	db.First(story, story.ID)
	if story.Status != models.StatusDraft {
		t.Errorf("status changed on invalid approve: %q", story.Status)
	}
}

func TestRejectStoryFromPublished(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	story := createStory(t, db, writer.ID, models.StatusPublished)

	w := doJSON(t, r, http.MethodPost, "/api/story/1/reject", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	db.First(story, story.ID)
	if story.Status != models.StatusPending {
		t.Errorf("expected pending after reject, got %q", story.Status)
	}
}

func TestRejectStoryFromPendingFails(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	createStory(t, db, writer.ID, models.StatusPending)

	w := doJSON(t, r, http.MethodPost, "/api/story/1/reject", adminToken, nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestSubmitStoryMovesDraftToPending(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)
	story := createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodPost, "/api/story/1/submit", token, nil)
	expectStatus(t, w, http.StatusOK)

	db.First(story, story.ID)
	if story.Status != models.StatusPending {
		t.Errorf("expected pending after submit, got %q", story.Status)
	}
}

func TestEditStoryOnlyWhileDraft(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)
	createStory(t, db, writer.ID, models.StatusPublished)

	w := doJSON(t, r, http.MethodPut, "/api/story/1", token, map[string]interface{}{
		"name": "Revised Tale",
	})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestEditStoryOnlyByAuthorOrAdmin(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, readerToken := createUser(t, db, models.RoleReader, true, false)
	story := createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodPut, "/api/story/1", readerToken, map[string]interface{}{
		"name": "Hijacked",
	})
	expectStatus(t, w, http.StatusForbidden)

	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	w = doJSON(t, r, http.MethodPut, "/api/story/1", adminToken, map[string]interface{}{
		"name": "Admin Edit",
	})
	expectStatus(t, w, http.StatusOK)

	db.First(story, story.ID)
	if story.Name != "Admin Edit" {
		t.Errorf("expected admin edit to persist, got %q", story.Name)
	}
}

func TestDeleteStoryDraft(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)
	createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodDelete, "/api/story/1", token, nil)
	expectStatus(t, w, http.StatusOK)

	var count int64
	db.Model(&models.Story{}).Count(&count)
	if count != 0 {
		t.Errorf("expected story deleted, %d rows remain", count)
	}
}

func TestDeleteStoryDraftNotOwned(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, readerToken := createUser(t, db, models.RoleReader, true, false)
	createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodDelete, "/api/story/1", readerToken, nil)
	expectStatus(t, w, http.StatusForbidden)
}

func TestDeletePublishedStoryRequiresAdmin(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)
	createStory(t, db, writer.ID, models.StatusPublished)

	// Author cannot remove published work, even their own.
	w := doJSON(t, r, http.MethodDelete, "/api/story/1", token, nil)
	expectStatus(t, w, http.StatusBadRequest)

	w = doJSON(t, r, http.MethodDelete, "/api/story/1/published", token, nil)
	expectStatus(t, w, http.StatusForbidden)

	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	w = doJSON(t, r, http.MethodDelete, "/api/story/1/published", adminToken, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestDeleteStoryNotFound(t *testing.T) {
	db, r := setupServer(t)
	_, token := createUser(t, db, models.RoleWriter, true, true)

	w := doJSON(t, r, http.MethodDelete, "/api/story/999", token, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestPublicStoriesListOnlyPublished(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	createStory(t, db, writer.ID, models.StatusPublished)

	draft := models.Story{WrittenBy: writer.ID, Name: "Hidden Draft", Status: models.StatusDraft}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("creating draft: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/public/stories", "", nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if got := body["count"].(float64); got != 1 {
		t.Errorf("expected 1 published story in the public list, got %v", got)
	}
}

func TestStoryDraftsScopedToAuthor(t *testing.T) {
	db, r := setupServer(t)
	writer, writerToken := createUser(t, db, models.RoleWriter, true, true)
	other, _ := createUser(t, db, models.RoleReader, true, false)
	createStory(t, db, writer.ID, models.StatusDraft)
	createStory(t, db, other.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodGet, "/api/story/drafts", writerToken, nil)
	expectStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if got := body["count"].(float64); got != 1 {
		t.Errorf("expected only the caller's draft, got %v", got)
	}

	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	w = doJSON(t, r, http.MethodGet, "/api/story/drafts", adminToken, nil)
	expectStatus(t, w, http.StatusOK)
	body = decodeBody(t, w)
	if got := body["count"].(float64); got != 2 {
		t.Errorf("expected admin to see all drafts, got %v", got)
	}
}

func TestGetUnpublishedStoryHiddenFromOthers(t *testing.T) {
	db, r := setupServer(t)
	writer, writerToken := createUser(t, db, models.RoleWriter, true, true)
	_, readerToken := createUser(t, db, models.RoleReader, true, false)
	createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodGet, "/api/story/1", readerToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, http.MethodGet, "/api/story/1", writerToken, nil)
	expectStatus(t, w, http.StatusOK)
}
