package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func firmarToken(t *testing.T, secret, rol string, exp time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   uuid.NewString(),
		Username: "test",
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(exp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rol": GetClaims(c).Rol})
	})
	r.GET("/protegido", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_SinHeader(t *testing.T) {
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	token := firmarToken(t, testSecret, "recepcionista", -time.Minute)
	w := doGet(protectedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_FirmaIncorrecta(t *testing.T) {
	token := firmarToken(t, "otro-secreto", "recepcionista", time.Hour)
	w := doGet(protectedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenValido(t *testing.T) {
	token := firmarToken(t, testSecret, "recepcionista", time.Hour)
	w := doGet(protectedRouter(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recepcionista")
}

func TestRequireRole_RolPermitido(t *testing.T) {
	token := firmarToken(t, testSecret, "supervisor", time.Hour)
	w := doGet(protectedRouter("supervisor", "administrador"), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RolInsuficiente(t *testing.T) {
	token := firmarToken(t, testSecret, "recepcionista", time.Hour)
	w := doGet(protectedRouter("administrador"), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
