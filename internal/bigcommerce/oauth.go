package bigcommerce

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront-app/internal/secret"
)

// InstallCallbackPath is where the platform redirects the merchant on install.
// It must match the redirect_uri registered for the app.
const InstallCallbackPath = "/bigcommerce/install"

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// OAuthResponse is the platform's answer to a code exchange. It is consumed
// immediately to derive a Store and never persisted as is.
type OAuthResponse struct {
	AccessToken secret.String `json:"access_token"`
	Scope       string        `json:"scope"`
	User        User          `json:"user"`
	Context     string        `json:"context"`
}

// Store is the durable pairing of a store hash and its API access token.
type Store struct {
	Hash        string
	AccessToken secret.String
}

// StoreIdentity derives the Store from the "stores/<hash>" context.
func (r OAuthResponse) StoreIdentity() (Store, error) {
	hash, err := storeHashFrom(r.Context)
	if err != nil {
		return Store{}, err
	}
	return Store{Hash: hash, AccessToken: r.AccessToken}, nil
}

type exchangeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
	Scope        string `json:"scope"`
	Context      string `json:"context"`
}

func (c *Client) oauthTokenURL() string {
	return c.loginBaseURL + "/oauth2/token"
}

// ExchangeCode trades a one-time install code for an access token. It makes a
// single attempt; codes are single-use, so the merchant decides whether to retry.
func (c *Client) ExchangeCode(ctx context.Context, callbackBaseURL, code, scope, storeContext string) (OAuthResponse, error) {
	body := exchangeRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret.Expose(),
		RedirectURI:  strings.TrimRight(callbackBaseURL, "/") + InstallCallbackPath,
		GrantType:    "authorization_code",
		Code:         code,
		Scope:        scope,
		Context:      storeContext,
	}

	var out OAuthResponse
	if err := c.doJSON(ctx, "oauth exchange", http.MethodPost, c.oauthTokenURL(), secret.String{}, body, &out); err != nil {
		return OAuthResponse{}, err
	}
	if out.AccessToken.IsEmpty() || out.Context == "" {
		return OAuthResponse{}, &TransportError{Op: "oauth exchange", Err: errors.New("response missing access_token or context")}
	}
	return out, nil
}

// storeHashFrom splits at the first '/' and returns the suffix.
func storeHashFrom(s string) (string, error) {
	_, hash, ok := strings.Cut(s, "/")
	if !ok || hash == "" {
		return "", ErrContextFormat
	}
	return hash, nil
}
