package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_NoToken(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, ErrNoSessionToken.Error(), resp.Message)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	// well-formed token whose ledger row is gone: signature checks are not
	// enough, the server-side session must still exist
	authMock := &mockAuthService{
		authenticateFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(&service.Services{AuthService: authMock})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "revoked.jwt.token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_CookiePreferredOverHeader(t *testing.T) {
	var seenToken string
	authMock := &mockAuthService{
		authenticateFn: func(_ context.Context, rawToken string) (models.Token, error) {
			seenToken = rawToken
			return models.Token{SignedString: rawToken, UserID: 7}, nil
		},
	}
	fileMock := &mockFileService{
		listFn: func(_ context.Context, _ models.User) ([]models.StoredFile, error) {
			return nil, nil
		},
	}
	userMock := &mockUserService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Role: models.RoleUser}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authMock, FileService: fileMock, UserService: userMock})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-token", seenToken)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token part", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdminOnly_NonAdminForbidden(t *testing.T) {
	authMock := &mockAuthService{
		authenticateFn: func(_ context.Context, rawToken string) (models.Token, error) {
			return models.Token{SignedString: rawToken, UserID: 7}, nil
		},
	}
	userMock := &mockUserService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Role: models.RoleUser}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authMock, UserService: userMock})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "signed.jwt.token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnly_AdminPasses(t *testing.T) {
	authMock := &mockAuthService{
		authenticateFn: func(_ context.Context, rawToken string) (models.Token, error) {
			return models.Token{SignedString: rawToken, UserID: 1}, nil
		},
	}
	userMock := &mockUserService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Role: models.RoleAdmin}, nil
		},
		listAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{{UserID: 2, Email: "bob@example.com"}}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authMock, UserService: userMock})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "signed.jwt.token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bob@example.com")
}
