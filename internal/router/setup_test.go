package router

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"endowal/config"
	"endowal/internal/auth"
	"endowal/internal/database"
	"endowal/internal/domain"
	"endowal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "test"},
		JWT:    config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour, Issuer: "endowal-test"},
	}
	return Setup(cfg, db), db, cfg
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	u := models.User{Email: email, Name: email, Role: role, IsActive: true, PasswordHash: "unused"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func bearer(t *testing.T, cfg *config.Config, u models.User) string {
	t.Helper()
	token, err := auth.GenerateAccessToken(&cfg.JWT, u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, authHeader string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), "body: %s", w.Body.String())
}

// testWorld is the two-teacher fixture most handler tests run against:
// teacher1 owns classroom1 with student1 and student2 enrolled, teacher2 owns
// an unrelated classroom2.
type testWorld struct {
	r   *gin.Engine
	db  *gorm.DB
	cfg *config.Config

	admin    models.User
	teacher1 models.User
	teacher2 models.User
	student1 models.User
	student2 models.User

	classroom1 models.Classroom
	classroom2 models.Classroom
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	r, db, cfg := newTestServer(t)
	w := &testWorld{r: r, db: db, cfg: cfg}
	w.admin = createUser(t, db, "admin@example.com", domain.RoleAdmin)
	w.teacher1 = createUser(t, db, "teacher1@example.com", domain.RoleTeacher)
	w.teacher2 = createUser(t, db, "teacher2@example.com", domain.RoleTeacher)
	w.student1 = createUser(t, db, "student1@example.com", domain.RoleStudent)
	w.student2 = createUser(t, db, "student2@example.com", domain.RoleStudent)

	w.classroom1 = models.Classroom{TeacherID: w.teacher1.ID, Name: "Period 1"}
	require.NoError(t, db.Create(&w.classroom1).Error)
	w.classroom2 = models.Classroom{TeacherID: w.teacher2.ID, Name: "Period 2"}
	require.NoError(t, db.Create(&w.classroom2).Error)

	for _, s := range []models.User{w.student1, w.student2} {
		e := models.Enrollment{ClassroomID: w.classroom1.ID, StudentID: s.ID}
		require.NoError(t, db.Create(&e).Error)
	}
	return w
}

func (w *testWorld) as(t *testing.T, u models.User) string {
	return bearer(t, w.cfg, u)
}

func (w *testWorld) wallet(t *testing.T, classroomID, studentID uint, balance int64) models.StudentWallet {
	t.Helper()
	wallet := models.StudentWallet{ClassroomID: classroomID, StudentID: studentID, BalanceCents: balance}
	require.NoError(t, w.db.Create(&wallet).Error)
	return wallet
}

func (w *testWorld) assignment(t *testing.T, classroomID, createdBy uint, title string) models.Assignment {
	t.Helper()
	a := models.Assignment{ClassroomID: classroomID, CreatedBy: createdBy, Title: title, Status: domain.AssignmentActive}
	require.NoError(t, w.db.Create(&a).Error)
	return a
}
