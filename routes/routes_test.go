package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drivefund/controllers"
	"drivefund/database"
	"drivefund/metrics"
	"drivefund/middleware"
	"drivefund/models"
	"drivefund/services"
	"drivefund/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("routes-secret")

	vocabulary := models.DefaultStatusVocabulary()
	store := database.NewMemoryStore(vocabulary)
	userID := primitive.NewObjectID()
	store.AddUsers(models.User{ID: userID, Email: "ada@x.com", PrivyID: "did:privy:ada", CreatedAt: models.NewTimestamp(time.Now().Add(-time.Hour))})
	store.AddTransactions(models.Transaction{ID: primitive.NewObjectID(), UserID: userID, Amount: 15000, Type: "deposit", Method: "card", Status: "success", CreatedAt: models.NewTimestamp(time.Now().Add(-time.Minute))})

	recorder := metrics.New()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	r := gin.New()
	SetupRoutes(r, Dependencies{
		Analytics:      services.NewAnalyticsService(store, vocabulary, services.WithMetrics(recorder)),
		Health:         controllers.NewHealthController("DriveFund Analytics", "test", "test", "memory", nil),
		Vocabulary:     vocabulary,
		Permission:     "analytics:read",
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
		RateLimiter:    middleware.NewRateLimiter(time.Minute, 100),
		Logger:         logger,
	})

	token, err := utils.GenerateAdminToken("admin-1", "ops@drivefund.ng", "admin", []string{"analytics:read"})
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	return r, token
}

func TestAnalyticsEndpointRequiresAdmin(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/analytics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAnalyticsEndpointRequiresPermission(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name        string
		role        string
		permissions []string
		want        int
	}{
		{"admin without permission", "admin", nil, http.StatusForbidden},
		{"admin with other permission", "admin", []string{"users:read"}, http.StatusForbidden},
		{"super admin bypasses", "super_admin", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := utils.GenerateAdminToken("admin-2", "ops@drivefund.ng", tt.role, tt.permissions)
			if err != nil {
				t.Fatalf("GenerateAdminToken: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/admin/api/analytics", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAnalyticsEndpointServesReport(t *testing.T) {
	r, token := newTestRouter(t)

	for _, path := range []string{"/admin/api/analytics?range=7d", "/admin/api/dashboard?range=7d"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d (%s)", path, rec.Code, rec.Body.String())
		}

		var body struct {
			Success bool                   `json:"success"`
			Data    models.DashboardReport `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body.Success || body.Data.Range != models.Range7Days {
			t.Fatalf("%s: body = %s", path, rec.Body.String())
		}
		if body.Data.Totals.TotalUsers != 1 || body.Data.Totals.TotalDepositsNgn != 15000 {
			t.Fatalf("%s: totals = %+v", path, body.Data.Totals)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: missing request id", path)
		}
	}
}

func TestMetricsEndpointExposesReportCounters(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{
		`drivefund_analytics_reports_total{outcome="ok",range="30d"} 1`,
		`drivefund_analytics_query_duration_seconds`,
		`route="/admin/api/analytics"`,
	} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestHealthAndVersion(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/version"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
	}
}
