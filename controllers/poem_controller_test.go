package controllers_test

import (
	"net/http"
	"testing"

	"github.com/kathamala/katha-backend/models"
)

func TestPoemModerationCycle(t *testing.T) {
	db, r := setupServer(t)
	writer, token := createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/poem", token, map[string]interface{}{
		"name":     "Morning Dew",
		"language": "english",
		"poem":     "Dew on the grass.",
	})
	expectStatus(t, w, http.StatusCreated)

	var poem models.Poem
	if err := db.Where("written_by = ?", writer.ID).First(&poem).Error; err != nil {
		t.Fatalf("poem not persisted: %v", err)
	}
	if poem.Status != models.StatusDraft {
		t.Fatalf("expected draft, got %q", poem.Status)
	}

	w = doJSON(t, r, http.MethodPost, "/api/poem/1/submit", token, nil)
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/poem/1/approve", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	db.First(&poem, poem.ID)
	if poem.Status != models.StatusPublished {
		t.Fatalf("expected published, got %q", poem.Status)
	}

	w = doJSON(t, r, http.MethodPost, "/api/poem/1/reject", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	db.First(&poem, poem.ID)
	if poem.Status != models.StatusPending {
		t.Fatalf("expected pending after reject, got %q", poem.Status)
	}
}

func TestApprovePoemRequiresPending(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)
	poem := createPoem(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodPost, "/api/poem/1/approve", adminToken, nil)
	expectStatus(t, w, http.StatusBadRequest)

	db.First(poem, poem.ID)
	if poem.Status != models.StatusDraft {
		t.Errorf("status changed on invalid approve: %q", poem.Status)
	}
}

func TestEditPoemNotOwned(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	_, readerToken := createUser(t, db, models.RoleReader, true, false)
	createPoem(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodPut, "/api/poem/1", readerToken, map[string]interface{}{
		"name": "Hijacked",
	})
	expectStatus(t, w, http.StatusForbidden)
}

func TestPublicPoemsListOnlyPublished(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	createPoem(t, db, writer.ID, models.StatusPublished)

	pending := models.Poem{WrittenBy: writer.ID, Name: "Waiting", Status: models.StatusPending}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("creating pending poem: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/public/poems", "", nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if got := body["count"].(float64); got != 1 {
		t.Errorf("expected 1 published poem, got %v", got)
	}
}
