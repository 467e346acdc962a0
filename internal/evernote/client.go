package evernote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lox/notecheck/internal/config"
)

// Evernote OAuth endpoints (production).
const (
	requestTokenURL = "https://www.evernote.com/oauth/request_token"
	authorizeURL    = "https://www.evernote.com/OAuth.action"
	accessTokenURL  = "https://www.evernote.com/oauth/access_token"
)

// Client performs the two remote legs of the Evernote OAuth 1.0a flow.
type Client struct {
	httpClient  *http.Client
	signer      *signer
	callbackURL string

	requestTokenURL string
	authorizeURL    string
	accessTokenURL  string
}

func NewClient(cfg config.EvernoteConfig) (*Client, error) {
	if strings.TrimSpace(cfg.ConsumerKey) == "" || strings.TrimSpace(cfg.ConsumerSecret) == "" {
		return nil, fmt.Errorf("Evernote consumer credentials are required (set EVERNOTE_CONSUMER_KEY and EVERNOTE_CONSUMER_SECRET)")
	}
	if strings.TrimSpace(cfg.CallbackURL) == "" {
		return nil, fmt.Errorf("Evernote callback URL is required (set EVERNOTE_CALLBACK_URL)")
	}

	return &Client{
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		signer:          newSigner(cfg.ConsumerKey, cfg.ConsumerSecret),
		callbackURL:     cfg.CallbackURL,
		requestTokenURL: requestTokenURL,
		authorizeURL:    authorizeURL,
		accessTokenURL:  accessTokenURL,
	}, nil
}

// RequestToken obtains a temporary credential pair, the first leg of the
// flow.
func (c *Client) RequestToken(ctx context.Context) (Token, error) {
	extra := url.Values{"oauth_callback": {c.callbackURL}}
	return c.fetchToken(ctx, c.requestTokenURL, extra, nil)
}

// AccessToken exchanges the temporary pair plus the user's verifier for a
// long-lived access credential pair, the final leg.
func (c *Client) AccessToken(ctx context.Context, requestToken Token, verifier string) (Token, error) {
	if strings.TrimSpace(verifier) == "" {
		return Token{}, fmt.Errorf("oauth verifier is required")
	}
	extra := url.Values{"oauth_verifier": {verifier}}
	return c.fetchToken(ctx, c.accessTokenURL, extra, &requestToken)
}

// AuthorizeURL is where the user's browser is sent to approve the request
// token.
func (c *Client) AuthorizeURL(requestToken Token) string {
	return c.authorizeURL + "?oauth_token=" + url.QueryEscape(requestToken.Key)
}

func (c *Client) fetchToken(ctx context.Context, endpoint string, extra url.Values, token *Token) (Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return Token{}, err
	}

	header, err := c.signer.authorizationHeader(http.MethodPost, endpoint, extra, token)
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Authorization", header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Token{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, err
	}
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Token{}, fmt.Errorf("evernote token endpoint %s failed (%d): %s", endpoint, resp.StatusCode, msg)
	}

	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return Token{}, fmt.Errorf("parse token response: %w", err)
	}

	out := Token{
		Key:    values.Get("oauth_token"),
		Secret: values.Get("oauth_token_secret"),
	}
	if out.Key == "" {
		return Token{}, fmt.Errorf("token response missing oauth_token: %q", strings.TrimSpace(string(body)))
	}
	return out, nil
}
