package evernote

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNoToken = errors.New("no Evernote token saved")

// TokenFile persists the OAuth credential pair across the handshake and
// beyond. It holds a single slot: each phase fully overwrites the file, so a
// second handshake started before the first finishes silently invalidates it.
// Acceptable for a single-user local tool; last write wins.
type TokenFile struct {
	path string
}

func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

func (f *TokenFile) Path() string {
	return f.path
}

type storedToken struct {
	RequestToken       string `json:"request_oauth_token,omitempty"`
	RequestTokenSecret string `json:"request_oauth_token_secret,omitempty"`
	AccessToken        string `json:"access_token,omitempty"`
	AccessTokenSecret  string `json:"access_token_secret,omitempty"`
}

// SaveRequest stores the temporary request-phase pair, replacing whatever the
// file held before.
func (f *TokenFile) SaveRequest(token Token) error {
	return f.write(storedToken{
		RequestToken:       token.Key,
		RequestTokenSecret: token.Secret,
	})
}

// SaveAccess stores the final access-phase pair, replacing the request pair.
func (f *TokenFile) SaveAccess(token Token) error {
	return f.write(storedToken{
		AccessToken:       token.Key,
		AccessTokenSecret: token.Secret,
	})
}

// LoadRequest reads back the request-phase pair saved by SaveRequest.
func (f *TokenFile) LoadRequest() (Token, error) {
	stored, err := f.read()
	if err != nil {
		return Token{}, err
	}
	if stored.RequestToken == "" {
		return Token{}, fmt.Errorf("token file %s holds no request token (was the flow restarted?)", f.path)
	}
	return Token{Key: stored.RequestToken, Secret: stored.RequestTokenSecret}, nil
}

// LoadAccess reads back the access-phase pair saved by SaveAccess.
func (f *TokenFile) LoadAccess() (Token, error) {
	stored, err := f.read()
	if err != nil {
		return Token{}, err
	}
	if stored.AccessToken == "" {
		return Token{}, fmt.Errorf("token file %s holds no access token", f.path)
	}
	return Token{Key: stored.AccessToken, Secret: stored.AccessTokenSecret}, nil
}

func (f *TokenFile) write(stored storedToken) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *TokenFile) read() (storedToken, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return storedToken{}, ErrNoToken
		}
		return storedToken{}, err
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return storedToken{}, fmt.Errorf("parse token file %s: %w", f.path, err)
	}
	return stored, nil
}
