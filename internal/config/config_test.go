package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != "https://sepolia-api.ekubo.org" {
		t.Fatalf("unexpected api base %q", cfg.APIBase)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.FallbackPrice != 1800 || cfg.MaxRetries != 3 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.Journal != "./data/swaps.jsonl" {
		t.Fatalf("unexpected journal %q", cfg.Journal)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "swapscope.yaml")
	content := "fallback-price: 2500\ntoken:\n  - 0x123=FOO:8\n  - \" \"\nrpc: http://file\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SWAPSCOPE_MAX_RETRIES", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("rpc", "", "")
	if err := flags.Parse([]string{"--rpc", "http://flag"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(file, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FallbackPrice != 2500 {
		t.Fatalf("expected file value, got %v", cfg.FallbackPrice)
	}
	if cfg.MaxRetries != 5 {
		t.Fatalf("expected env value, got %d", cfg.MaxRetries)
	}
	if cfg.RPCURL != "http://flag" {
		t.Fatalf("expected flag value, got %q", cfg.RPCURL)
	}
	if len(cfg.Tokens) != 1 || cfg.Tokens[0] != "0x123=FOO:8" {
		t.Fatalf("unexpected tokens %v", cfg.Tokens)
	}
}

func TestLoadRejectsNegativeFallbackPrice(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SWAPSCOPE_FALLBACK_PRICE", "-1")
	if _, err := Load("", nil); err == nil {
		t.Fatalf("expected error for negative fallback price")
	}
}

func TestSplitAndClean(t *testing.T) {
	got := splitAndClean(" a , ,b")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected %v", got)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
