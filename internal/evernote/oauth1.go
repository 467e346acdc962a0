package evernote

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Token is an OAuth 1.0a credential pair. It covers both phases of the
// three-legged flow: the temporary request token and the access token.
type Token struct {
	Key    string
	Secret string
}

// signer signs OAuth 1.0a requests with HMAC-SHA1. Evernote's endpoints take
// the protocol parameters in the Authorization header.
type signer struct {
	consumerKey    string
	consumerSecret string
	now            func() time.Time
}

func newSigner(consumerKey, consumerSecret string) *signer {
	return &signer{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		now:            time.Now,
	}
}

// authorizationHeader builds the Authorization header value for a request.
// extra carries flow-specific protocol params (oauth_callback on the request
// token leg, oauth_verifier on the access token leg). token is nil on the
// first leg.
func (s *signer) authorizationHeader(method, rawURL string, extra url.Values, token *Token) (string, error) {
	if s.consumerKey == "" || s.consumerSecret == "" {
		return "", errors.New("oauth1: missing consumer credentials")
	}
	nonce, err := randomNonce(16)
	if err != nil {
		return "", err
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.consumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        fmt.Sprintf("%d", s.now().Unix()),
		"oauth_version":          "1.0",
	}
	for k := range extra {
		oauthParams[k] = extra.Get(k)
	}
	if token != nil && token.Key != "" {
		oauthParams["oauth_token"] = token.Key
	}

	normalizedURL, err := normalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	baseString := strings.ToUpper(method) + "&" +
		oauthEscape(normalizedURL) + "&" +
		oauthEscape(normalizeParams(oauthParams))

	signingKey := oauthEscape(s.consumerSecret) + "&"
	if token != nil {
		signingKey += oauthEscape(token.Secret)
	}
	oauthParams["oauth_signature"] = signHMACSHA1(signingKey, baseString)

	// Deterministic header ordering for easier debugging.
	keys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, oauthEscape(oauthParams[k])))
	}
	return "OAuth " + strings.Join(parts, ", "), nil
}

func normalizeParams(oauthParams map[string]string) string {
	pairs := make([]string, 0, len(oauthParams))
	for k, v := range oauthParams {
		pairs = append(pairs, oauthEscape(k)+"="+oauthEscape(v))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

func normalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("oauth1: invalid URL: %s", rawURL)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	// Scheme and host are lowercased per OAuth 1.0 normalization.
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path, nil
}

func signHMACSHA1(key, msg string) string {
	h := hmac.New(sha1.New, []byte(key))
	_, _ = h.Write([]byte(msg))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func randomNonce(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// oauthEscape encodes s per RFC3986 (unreserved: ALPHA / DIGIT / "-" / "." /
// "_" / "~"), the encoding OAuth 1.0 signature base strings require.
func oauthEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		b.WriteString(fmt.Sprintf("%%%02X", c))
	}
	return b.String()
}
