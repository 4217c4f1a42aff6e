package webflow

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuth scopes requested when connecting a Webflow account. Read-only: the
// sync layer never writes upstream.
var oauthScopes = []string{"sites:read", "cms:read", "ecommerce:read", "pages:read"}

// OAuthConfig wraps the Webflow OAuth endpoints for the account-connect flow.
type OAuthConfig struct {
	config *oauth2.Config
}

// NewOAuthConfig builds the OAuth configuration from the app credentials.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *OAuthConfig {
	return &OAuthConfig{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       oauthScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://webflow.com/oauth/authorize",
				TokenURL:  "https://api.webflow.com/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// AuthorizeURL returns the URL the user is redirected to for authorization.
// state ties the callback back to the initiating user.
func (o *OAuthConfig) AuthorizeURL(state string) string {
	return o.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
func (o *OAuthConfig) Exchange(ctx context.Context, code string) (string, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange webflow authorization code: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("webflow token response carried no access token")
	}
	return token.AccessToken, nil
}
