package adapthttp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"noteful/internal/app"
)

// SSOConfig holds the OIDC provider wiring for the optional SSO login path.
type SSOConfig struct {
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewSSO discovers the OIDC provider and prepares the OAuth2 flow.
func NewSSO(ctx context.Context, issuerURL, clientID, clientSecret, redirectURL string) (*SSOConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, err
	}
	return &SSOConfig{
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.sso.oauth.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		writeMessage(w, http.StatusBadRequest, "invalid state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	token, err := s.sso.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to exchange token")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "no id_token")
		return
	}

	idToken, err := s.sso.verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to verify token")
		return
	}

	var claims struct {
		Email string `json:"email"`
		Sub   string `json:"sub"`
		Name  string `json:"name"`
	}
	if err = idToken.Claims(&claims); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to parse claims")
		return
	}

	username := claims.Email
	if username == "" {
		username = claims.Sub
	}

	account, err := s.accounts.EnsureAccount(r.Context(), username, claims.Name)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}

	authToken, err := s.tokens.Issue(app.IdentityOf(account))
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authToken": authToken})
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
