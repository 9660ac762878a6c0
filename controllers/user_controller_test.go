package controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/kathamala/katha-backend/models"
)

func TestListUsersRequiresAdmin(t *testing.T) {
	db, r := setupServer(t)
	_, userToken := createUser(t, db, models.RoleReader, true, false)

	w := doJSON(t, r, http.MethodGet, "/api/users", userToken, nil)
	expectStatus(t, w, http.StatusForbidden)
}

func TestListUsersRoleFilter(t *testing.T) {
	db, r := setupServer(t)
	createUser(t, db, models.RoleReader, true, false)
	createUser(t, db, models.RoleWriter, true, true)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/users?role=writer", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if got := body["count"].(float64); got != 1 {
		t.Errorf("expected 1 writer, got %v", got)
	}
}

func TestApproveWriterActivatesAccount(t *testing.T) {
	db, r := setupServer(t)
	writer, writerToken := createUser(t, db, models.RoleWriter, false, false)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)

	// Before approval the writer cannot even authenticate past the
	// active check.
	w := doJSON(t, r, http.MethodGet, "/api/auth-check", writerToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	path := "/api/user/" + strconv.Itoa(int(writer.ID)) + "/approval"
	w = doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{
		"is_approved": true,
	})
	expectStatus(t, w, http.StatusOK)

	db.First(writer, writer.ID)
	if !writer.IsApproved || !writer.IsActive {
		t.Fatalf("expected approved+active writer, got approved=%v active=%v", writer.IsApproved, writer.IsActive)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth-check", writerToken, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestApprovalOnlyForWriters(t *testing.T) {
	db, r := setupServer(t)
	reader, _ := createUser(t, db, models.RoleReader, true, false)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)

	path := "/api/user/" + strconv.Itoa(int(reader.ID)) + "/approval"
	w := doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{
		"is_approved": true,
	})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestSetUserStatus(t *testing.T) {
	db, r := setupServer(t)
	reader, readerToken := createUser(t, db, models.RoleReader, true, false)
	_, adminToken := createAdmin(t, db, models.RoleSuperAdmin)

	path := "/api/user/" + strconv.Itoa(int(reader.ID)) + "/status"
	w := doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{
		"is_active": false,
	})
	expectStatus(t, w, http.StatusOK)

	// Deactivated users are locked out mid-session.
	w = doJSON(t, r, http.MethodGet, "/api/auth-check", readerToken, nil)
	expectStatus(t, w, http.StatusForbidden)
}

func TestGetWriterPublicProfile(t *testing.T) {
	db, r := setupServer(t)
	writer, _ := createUser(t, db, models.RoleWriter, true, true)
	createStory(t, db, writer.ID, models.StatusPublished)
	createPoem(t, db, writer.ID, models.StatusPublished)
	createStory(t, db, writer.ID, models.StatusDraft)

	w := doJSON(t, r, http.MethodGet, "/api/writer/"+strconv.Itoa(int(writer.ID)), "", nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	profile := body["writer"].(map[string]interface{})
	if profile["story_count"].(float64) != 1 {
		t.Errorf("expected 1 published story, got %v", profile["story_count"])
	}
	if profile["poem_count"].(float64) != 1 {
		t.Errorf("expected 1 published poem, got %v", profile["poem_count"])
	}
	if _, leaked := profile["email"]; leaked {
		t.Error("public writer profile should not expose email")
	}
}

func TestGetWriterNotFoundForReaders(t *testing.T) {
	db, r := setupServer(t)
	reader, _ := createUser(t, db, models.RoleReader, true, false)

	w := doJSON(t, r, http.MethodGet, "/api/writer/"+strconv.Itoa(int(reader.ID)), "", nil)
	expectStatus(t, w, http.StatusNotFound)
}
