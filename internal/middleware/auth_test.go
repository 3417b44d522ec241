package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockSessionStore struct {
	mockFindByID func(ctx context.Context, id uint) (*models.Session, error)
}

func (m *mockSessionStore) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	return m.mockFindByID(ctx, id)
}

type mockAuditor struct {
	denials []string
}

func (m *mockAuditor) PermissionDenied(ctx context.Context, userID *uint, requirement, path, ip, userAgent string) {
	m.denials = append(m.denials, requirement+" "+path)
}

const testSecret = "test-secret"

func signTestToken(t *testing.T, sessionID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"user_id":    uint(1),
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func activeSession(id, userID uint) *models.Session {
	expires := time.Now().Add(time.Hour)
	return &models.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: &expires,
		User:      models.User{ID: userID, Email: "m@example.com", Role: models.RoleMonteur, Status: models.StatusActive},
	}
}

func authRouter(store SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testSecret, store))
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	return router
}

func TestAuth_MissingToken(t *testing.T) {
	router := authRouter(&mockSessionStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_CookieWithDeletedSession(t *testing.T) {
	store := &mockSessionStore{
		mockFindByID: func(ctx context.Context, id uint) (*models.Session, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	router := authRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signTestToken(t, 42)})
	router.ServeHTTP(w, req)

	// Logout deletes the session row, so a still-valid token is rejected
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidCookie(t *testing.T) {
	store := &mockSessionStore{
		mockFindByID: func(ctx context.Context, id uint) (*models.Session, error) {
			return activeSession(id, 1), nil
		},
	}
	router := authRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signTestToken(t, 42)})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.RoleMonteur)
}

func TestAuth_BearerFallback(t *testing.T) {
	store := &mockSessionStore{
		mockFindByID: func(ctx context.Context, id uint) (*models.Session, error) {
			return activeSession(id, 1), nil
		},
	}
	router := authRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, 42))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_DisabledAccount(t *testing.T) {
	store := &mockSessionStore{
		mockFindByID: func(ctx context.Context, id uint) (*models.Session, error) {
			session := activeSession(id, 1)
			session.User.Status = models.StatusInactive
			return session, nil
		},
	}
	router := authRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signTestToken(t, 42)})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func roleRouter(role string, auditor Auditor, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("userRole", role)
	})
	router.GET("/guarded", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireRole_AdminAlwaysPasses(t *testing.T) {
	auditor := &mockAuditor{}
	router := roleRouter(models.RoleAdmin, auditor, RequireRole(auditor, models.RoleLohn))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, auditor.denials)
}

func TestRequireRole_DenialIsAudited(t *testing.T) {
	auditor := &mockAuditor{}
	router := roleRouter(models.RoleMonteur, auditor, RequireRole(auditor, models.RoleBuero, models.RoleLohn))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, auditor.denials, 1)
	assert.Contains(t, auditor.denials[0], "role:buero|lohn")
	assert.Contains(t, auditor.denials[0], "/guarded")
}

func TestRequirePermission_GrantsAndDenies(t *testing.T) {
	auditor := &mockAuditor{}
	router := roleRouter(models.RoleLohn, auditor, RequirePermission(auditor, PermPayrollExport))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/guarded", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	router = roleRouter(models.RoleMonteur, auditor, RequirePermission(auditor, PermPayrollExport))
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, auditor.denials, 1)
	assert.Contains(t, auditor.denials[0], "permission:payroll.export")
}
