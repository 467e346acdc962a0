package evernote

import (
	"fmt"
	"net/http"
)

// Relay is the local redirect handler for the three-legged OAuth flow:
// GET / fetches a request token, persists it, and bounces the browser to
// Evernote's authorization page; GET /callback exchanges the persisted
// request token plus Evernote's verifier for an access token.
//
// The token file is the only handshake state, so the relay supports one
// logical session at a time: hitting / again before the callback overwrites
// the pending request token.
type Relay struct {
	client *Client
	tokens *TokenFile
}

func NewRelay(client *Client, tokens *TokenFile) *Relay {
	return &Relay{client: client, tokens: tokens}
}

// Handler routes the two relay endpoints.
func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", r.handleStart)
	mux.HandleFunc("GET /callback", r.handleCallback)
	return mux
}

func (r *Relay) handleStart(w http.ResponseWriter, req *http.Request) {
	token, err := r.client.RequestToken(req.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("fetch request token: %v", err), http.StatusBadGateway)
		return
	}

	// Persist before redirecting: the callback arrives in a separate
	// request and needs the pair to finish the exchange.
	if err := r.tokens.SaveRequest(token); err != nil {
		http.Error(w, fmt.Sprintf("save request token: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, req, r.client.AuthorizeURL(token), http.StatusFound)
}

func (r *Relay) handleCallback(w http.ResponseWriter, req *http.Request) {
	verifier := req.URL.Query().Get("oauth_verifier")
	if verifier == "" {
		http.Error(w, "Missing oauth_verifier in callback.", http.StatusBadRequest)
		return
	}

	requestToken, err := r.tokens.LoadRequest()
	if err != nil {
		http.Error(w, fmt.Sprintf("read request token: %v", err), http.StatusInternalServerError)
		return
	}

	accessToken, err := r.client.AccessToken(req.Context(), requestToken, verifier)
	if err != nil {
		http.Error(w, fmt.Sprintf("exchange access token: %v", err), http.StatusBadGateway)
		return
	}

	if err := r.tokens.SaveAccess(accessToken); err != nil {
		http.Error(w, fmt.Sprintf("save access token: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Evernote OAuth complete. Token saved to:\n%s\n\nYou can close this tab.\n", r.tokens.Path())
}
