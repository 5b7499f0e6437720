package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogpulse.yaml")
	cfg := Default()
	cfg.Account.Username = "someblog"
	cfg.Clean.Hashtag = "#stats"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got.ResolveEnv() // idempotent; keeps comparison fair if env is set
	cfg.ResolveEnv()
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveEnvFillsCredentials(t *testing.T) {
	t.Setenv("X_CONSUMER_KEY", "ck")
	t.Setenv("X_CONSUMER_SECRET", "cs")
	t.Setenv("X_ACCESS_TOKEN", "at")
	t.Setenv("X_ACCESS_SECRET", "as")
	cfg := Default()
	cfg.ResolveEnv()
	if cfg.Credentials.ConsumerKey != "ck" || cfg.Credentials.AccessSecret != "as" {
		t.Fatalf("env not resolved: %+v", cfg.Credentials)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("X_CONSUMER_KEY", "")
	t.Setenv("X_CONSUMER_SECRET", "")
	t.Setenv("X_ACCESS_TOKEN", "")
	t.Setenv("X_ACCESS_SECRET", "")

	cfg := Default()
	cfg.ResolveEnv()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("want ErrMissingCredentials, got %v", err)
	}

	cfg.Credentials = CredentialsConfig{ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at", AccessSecret: "as"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("want valid, got %v", err)
	}

	cfg.Account.Username = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty username")
	}
}
