package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/routes"
	"github.com/kathamala/katha-backend/services"
	"github.com/kathamala/katha-backend/utils"
)

// setupServer wires a throwaway sqlite database into the real router so
// handler tests exercise the same middleware chain as production.
func setupServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("SMTP_HOST", "127.0.0.1")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	config.DB = db
	services.Revoker = services.NewMemoryTokenRevoker()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	return db, routes.SetupRouter(r, db)
}

func createUser(t *testing.T, db *gorm.DB, role models.UserRole, active, approved bool) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := models.User{
		FullName:   "Test " + string(role),
		Email:      string(role) + "@example.com",
		Mobile:     "9990001111",
		Password:   string(hashed),
		Role:       role,
		IsActive:   active,
		IsApproved: approved,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user.ID, string(role), utils.KindUser)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return &user, token
}

func createAdmin(t *testing.T, db *gorm.DB, role models.AdminRole) (*models.Admin, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	admin := models.Admin{
		FullName: "Test " + string(role),
		Email:    string(role) + "@example.com",
		Mobile:   "888-" + string(role),
		Password: string(hashed),
		Role:     role,
		Status:   models.AdminStatusActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("creating test admin: %v", err)
	}

	token, err := utils.GenerateToken(admin.ID, string(role), utils.KindAdmin)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return &admin, token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return out
}

func createStory(t *testing.T, db *gorm.DB, authorID uint, status models.ContentStatus) *models.Story {
	t.Helper()

	story := models.Story{
		WrittenBy: authorID,
		Name:      "The Winter Tale",
		Language:  "english",
		Body:      "Once upon a time.",
		Status:    status,
	}
	if err := db.Create(&story).Error; err != nil {
		t.Fatalf("creating test story: %v", err)
	}
	return &story
}

func createPoem(t *testing.T, db *gorm.DB, authorID uint, status models.ContentStatus) *models.Poem {
	t.Helper()

	poem := models.Poem{
		WrittenBy: authorID,
		Name:      "Morning Dew",
		Language:  "english",
		Body:      "Dew on the grass.",
		Status:    status,
	}
	if err := db.Create(&poem).Error; err != nil {
		t.Fatalf("creating test poem: %v", err)
	}
	return &poem
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d (body: %s)", want, w.Code, w.Body.String())
	}
}
