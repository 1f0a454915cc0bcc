package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
)

func authTestRouter(secret []byte, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := []gin.HandlerFunc{RequireAuth(secret)}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})

	r.GET("/protected", chain...)
	return r
}

func TestRequireAuthValidToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := SignToken(secret, 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authTestRouter(secret).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestRequireAuthMissingOrBadToken(t *testing.T) {
	secret := []byte("test-secret")
	r := authTestRouter(secret)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Token signed under a different secret.
	otherToken, err := SignToken([]byte("other-secret"), 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireRoles(t *testing.T) {
	secret := []byte("test-secret")
	r := authTestRouter(secret, domain.RoleAdmin)

	userToken, err := SignToken(secret, 42, domain.RoleUser)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user role: status = %d, want %d", w.Code, http.StatusForbidden)
	}

	adminToken, err := SignToken(secret, 1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin role: status = %d, want %d", w.Code, http.StatusOK)
	}
}
