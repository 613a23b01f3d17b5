package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/gramconnect/internal/config"
)

func TestTokenFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	token, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, token, "missing file is not an error")

	saved := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour).Round(time.Second)}
	require.NoError(t, SaveTokenToFile("test", saved))

	path := filepath.Join(home, tokenDirName, "token-test.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenFilePerms), info.Mode().Perm())

	loaded, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, saved.Expiry.Equal(loaded.Expiry))

	require.NoError(t, DeleteTokenFile("test"))
	require.NoError(t, DeleteTokenFile("test"), "deleting twice is fine")

	loaded, err = LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadTokenFromFile_Corrupt(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, tokenDirName)
	require.NoError(t, os.MkdirAll(dir, tokenDirPerms))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token-test.json"), []byte("{"), tokenFilePerms))

	_, err := LoadTokenFromFile("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token file")
}

func TestStoredTokenSource_NoToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := StoredTokenSource(context.Background(), &oauth2.Config{}, "test")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestGetOAuthConfig(t *testing.T) {
	cfg, err := GetOAuthConfig(&config.OAuthClientConfig{Installed: config.OAuthInstalled{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthURI:      "https://accounts.google.com/o/oauth2/auth",
		TokenURI:     "https://oauth2.googleapis.com/token",
		RedirectURIs: []string{"http://localhost"},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{ScopeGmailSend}, cfg.Scopes)
	assert.Equal(t, "http://localhost:3001/oauth/callback", cfg.RedirectURL)
}

func TestValidateTokenScopes(t *testing.T) {
	scope := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scope":"` + scope + `"}`))
	}))
	defer srv.Close()

	original := tokenInfoURL
	tokenInfoURL = srv.URL
	defer func() { tokenInfoURL = original }()

	token := &oauth2.Token{AccessToken: "abc"}

	scope = "openid " + ScopeGmailSend
	assert.NoError(t, validateTokenScopes(context.Background(), token))

	scope = "openid"
	err := validateTokenScopes(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required scopes")
}
