package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/notecheck/internal/config"
	"github.com/lox/notecheck/internal/output"
)

func TestAuthSetupVerifiesAndPersistsToken(t *testing.T) {
	verifyCalls := 0
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected verification path %s", r.URL.Path)
		}
		verifyCalls++
		gotAuth = r.Header.Get("Authorization")

		defer func() { _ = r.Body.Close() }()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[],"next_cursor":null,"has_more":false}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTION_BASE_URL", srv.URL)

	if err := (&AuthSetupCmd{Token: "ntn_new"}).Run(&Context{}); err != nil {
		t.Fatal(err)
	}

	if verifyCalls != 1 {
		t.Fatalf("expected one verification call, got %d", verifyCalls)
	}
	if gotAuth != "Bearer ntn_new" {
		t.Fatalf("verification used wrong token: %s", gotAuth)
	}
	if gotBody["page_size"] != float64(1) {
		t.Fatalf("verification should request a single result: %v", gotBody)
	}

	saved, err := config.LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Notion.Token != "ntn_new" {
		t.Fatalf("token not persisted: %q", saved.Notion.Token)
	}
}

func TestAuthSetupNoVerifySkipsAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no API call expected with --no-verify, got %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTION_BASE_URL", srv.URL)

	if err := (&AuthSetupCmd{Token: "ntn_new", NoVerify: true}).Run(&Context{}); err != nil {
		t.Fatal(err)
	}

	saved, err := config.LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Notion.Token != "ntn_new" {
		t.Fatalf("token not persisted: %q", saved.Notion.Token)
	}
}

func TestAuthSetupRejectedTokenIsNotPersisted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"object":"error","code":"unauthorized","message":"API token is invalid"}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTION_BASE_URL", srv.URL)

	if err := (&AuthSetupCmd{Token: "ntn_bad"}).Run(&Context{}); err == nil {
		t.Fatal("expected verification failure")
	}

	saved, err := config.LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Notion.Token != "" {
		t.Fatalf("rejected token must not be saved: %q", saved.Notion.Token)
	}
}

func TestAuthSetupRequiresTerminalWithoutToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := (&AuthSetupCmd{}).Run(&Context{})
	var userErr *output.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError without a terminal, got %v", err)
	}
}

func TestAuthWizardTokenInputAcceptsQ(t *testing.T) {
	t.Parallel()

	m := newAuthSetupWizardModel()
	m.step = authSetupTokenInput
	m.input.Focus()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	wizard, ok := updated.(authSetupWizardModel)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	if wizard.cancelled {
		t.Fatal("typing q must not cancel token entry")
	}
	if got := wizard.input.Value(); got != "q" {
		t.Fatalf("input should contain the typed rune, got %q", got)
	}
}
