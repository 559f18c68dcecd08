package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"drivefund/models"
	"drivefund/utils"

	"github.com/gin-gonic/gin"
)

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminMiddleware(models.DefaultStatusVocabulary()), func(c *gin.Context) {
		claims, _ := utils.GetAdminClaimsFromContext(c)
		c.String(http.StatusOK, claims.AdminID)
	})
	return r
}

func TestAdminMiddleware(t *testing.T) {
	utils.SetJWTSecret("middleware-secret")

	adminToken, err := utils.GenerateAdminToken("admin-7", "ops@drivefund.ng", "ADMIN", nil)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	investorToken, err := utils.GenerateAdminToken("user-9", "inv@drivefund.ng", "investor", nil)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"non-admin role", "Bearer " + investorToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	r := newAdminRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "admin-7" {
				t.Fatalf("admin id = %q", rec.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		claims *utils.AdminClaims
		want   int
	}{
		{"no claims", nil, http.StatusForbidden},
		{"missing permission", &utils.AdminClaims{AdminID: "a", Role: "admin"}, http.StatusForbidden},
		{"granted", &utils.AdminClaims{AdminID: "a", Role: "admin", Permissions: []string{"analytics:read"}}, http.StatusOK},
		{"super admin", &utils.AdminClaims{AdminID: "a", Role: "super_admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				if tt.claims != nil {
					utils.SetAdminClaimsInContext(c, tt.claims)
				}
				c.Next()
			}, RequirePermission("analytics:read"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
