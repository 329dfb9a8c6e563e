package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	"github.com/strivetrack/strivetrack-api/internal/database"
	"github.com/strivetrack/strivetrack-api/internal/dto"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
	"github.com/strivetrack/strivetrack-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAdminEmail = "admin@strivetrack.test"

type RouterSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { sqlDB.Close() })

	s.Require().NoError(database.Migrate(db))
	s.Require().NoError(database.Seed(db))

	svc := services.NewServices(db, storage.NewMemoryStore(), testAdminEmail, time.Hour)
	s.db = db
	s.router = NewRouter(svc, RouterOptions{
		CORSOrigins: []string{"http://localhost:3000"},
		HealthCheck: func(ctx context.Context) error { return sqlDB.PingContext(ctx) },
	})
}

func (s *RouterSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(constants.SessionHeader, token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, dst interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

// login registers the account and returns a fresh session token.
func (s *RouterSuite) login(email string) (string, dto.UserDTO) {
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "supersecret",
		"name":     "Tester",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.SessionResponse
	s.decode(w, &resp)
	s.Require().NotEmpty(resp.SessionID)
	return resp.SessionID, resp.User
}

func (s *RouterSuite) loginAdmin() (string, dto.UserDTO) {
	token, user := s.login(testAdminEmail)
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", user.ID).Update("role", models.RoleAdmin).Error)
	return token, user
}

func (s *RouterSuite) errorBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.decode(w, &body)
	return body
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}

func (s *RouterSuite) TestMissingSessionIsUnauthorized() {
	w := s.do(http.MethodGet, "/api/habits", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid session", s.errorBody(w)["error"])

	w = s.do(http.MethodGet, "/api/auth/me", "not-a-real-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid session", s.errorBody(w)["error"])
}

func (s *RouterSuite) TestExpiredSessionIsUnauthorized() {
	token, _ := s.login("expired@example.com")
	s.Require().NoError(s.db.Model(&models.Session{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	w := s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid session", s.errorBody(w)["error"])
}

func (s *RouterSuite) TestRegisterLoginMeLogout() {
	token, user := s.login("flow@example.com")
	s.Equal("flow@example.com", user.Email)
	s.Equal(models.RoleUser, user.Role)

	w := s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me dto.UserDTO
	s.decode(w, &me)
	s.Equal(user.ID, me.ID)

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "flow@example.com",
		"password": "supersecret",
	})
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "flow@example.com",
		"password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestUpdateProfile() {
	token, _ := s.login("profile@example.com")

	w := s.do(http.MethodPatch, "/api/profile", token, map[string]interface{}{
		"name":      "Renamed",
		"height_cm": 180,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	s.decode(w, &user)
	s.Equal("Renamed", user.Name)
	s.Require().NotNil(user.HeightCM)
	s.InDelta(180, *user.HeightCM, 0.001)
}

func (s *RouterSuite) TestWeightBoundsAndUnitOnlyUpdate() {
	token, _ := s.login("scale@example.com")

	w := s.do(http.MethodPost, "/api/weight", token, map[string]interface{}{"weight": 1e307, "unit": "lbs"})
	s.Equal(http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/weight", token, map[string]interface{}{"weight": 180, "unit": "lbs"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var entry models.WeightLog
	s.decode(w, &entry)

	w = s.do(http.MethodPut, "/api/weight/"+entry.ID, token, map[string]interface{}{"unit": "kg"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/goals", token, map[string]interface{}{"target_weight": 1e307, "unit": "kg"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/weight", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"weight_lbs":180`)
}

func (s *RouterSuite) TestHabitOwnership() {
	owner, _ := s.login("owner@example.com")
	other, _ := s.login("other@example.com")

	w := s.do(http.MethodPost, "/api/habits", owner, map[string]interface{}{"name": "Run"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var habit dto.HabitDTO
	s.decode(w, &habit)

	w = s.do(http.MethodPut, "/api/habits/"+habit.ID, other, map[string]interface{}{"name": "Mine now"})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/habits/"+habit.ID+"/complete", other, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/habits/"+habit.ID+"/complete", owner, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/habits", owner, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.HabitListResponse
	s.decode(w, &list)
	s.Require().Len(list.Habits, 1)
	s.True(list.Habits[0].CompletedToday)
	s.Equal(1, list.CurrentStreak)
}

func (s *RouterSuite) TestUnlockTwiceConflicts() {
	token, _ := s.login("unlock@example.com")

	w := s.do(http.MethodPost, "/api/achievements/first-habit/unlock", token, nil)
	s.Equal(http.StatusBadRequest, w.Code, "requirement not met yet")

	w = s.do(http.MethodPost, "/api/habits", token, map[string]interface{}{"name": "Read"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/achievements/first-habit/unlock", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var result services.UnlockResult
	s.decode(w, &result)
	s.Equal(10, result.PointsAwarded)

	w = s.do(http.MethodPost, "/api/achievements/first-habit/unlock", token, nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/achievements/no-such-thing/unlock", token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestAdminRoutesRequireAdmin() {
	token, _ := s.login("member@example.com")

	w := s.do(http.MethodGet, "/api/admin/users", token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	// The admin email alone is not enough without the admin role.
	emailOnly, _ := s.login(testAdminEmail)
	w = s.do(http.MethodGet, "/api/admin/users", emailOnly, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterSuite) TestAdminCannotDeleteAdmin() {
	token, admin := s.loginAdmin()
	_, member := s.login("member@example.com")

	w := s.do(http.MethodDelete, "/api/admin/users/"+admin.ID, token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/admin/users", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), member.ID)

	w = s.do(http.MethodDelete, "/api/admin/users/"+member.ID, token, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/api/admin/users/"+member.ID, token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestSuspendedUserIsForbidden() {
	adminToken, _ := s.loginAdmin()
	token, member := s.login("suspend@example.com")

	w := s.do(http.MethodPatch, "/api/admin/users/"+member.ID+"/status", adminToken, map[string]string{
		"status": string(models.UserStatusSuspended),
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/habits", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterSuite) TestNotesNeedMigration() {
	token, _ := s.loginAdmin()
	_, member := s.login("legacy@example.com")

	s.Require().NoError(s.db.Migrator().DropColumn(&models.User{}, "admin_notes"))

	w := s.do(http.MethodPatch, "/api/admin/users/"+member.ID+"/notes", token, map[string]string{
		"notes": "watch this one",
	})
	s.Equal(http.StatusServiceUnavailable, w.Code)

	body := s.errorBody(w)
	s.Equal(true, body["migration_required"])
	s.Equal("MIGRATION_REQUIRED", body["code"])
}

func (s *RouterSuite) TestMediaUploadRoundTrip() {
	token, _ := s.login("photos@example.com")
	payload := []byte("\x89PNG fake image bytes")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="progress.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write(payload)
	s.Require().NoError(err)
	s.Require().NoError(mw.WriteField("description", "week one"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(constants.SessionHeader, token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var media dto.MediaDTO
	s.decode(w, &media)
	s.Equal(models.MediaImage, media.MediaType)
	s.Equal("week one", media.Description)
	s.Equal(int64(len(payload)), media.SizeBytes)

	w = s.do(http.MethodGet, media.ContentURL, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))
	s.Equal(payload, w.Body.Bytes())

	other, _ := s.login("nosy@example.com")
	w = s.do(http.MethodGet, media.ContentURL, other, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/api/media/"+media.ID, token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, media.ContentURL, token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestMediaUploadRequiresFile() {
	token, _ := s.login("nofile@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	s.Require().NoError(mw.WriteField("description", "nothing attached"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(constants.SessionHeader, token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestDailyChallengeOncePerDay() {
	token, _ := s.login("daily@example.com")

	w := s.do(http.MethodPost, "/api/daily-challenges/hydrate/complete", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/daily-challenges/hydrate/complete", token, nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/leaderboard?metric=weekly_points", token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"value":10`)
}
