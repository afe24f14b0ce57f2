package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"

	"github.com/szaher/ksecret/internal/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output != "text" {
		t.Errorf("Output = %q, want text", cfg.Output)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(`
kubeconfig: ~/.kube/dev
context: dev-cluster
output: yaml
no_color: true
request_timeout: 5s
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Kubeconfig != "~/.kube/dev" || cfg.Context != "dev-cluster" {
		t.Errorf("unexpected cluster settings: %+v", cfg)
	}
	if cfg.Output != "yaml" || !cfg.NoColor {
		t.Errorf("unexpected output settings: %+v", cfg)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}

func TestParse_KeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("context: prod\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "text" || cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParse_InvalidOutput(t *testing.T) {
	_, err := Parse([]byte("output: table\n"))
	testutil.AssertErrorContains(t, err, "invalid config")
}

func TestParse_NegativeTimeout(t *testing.T) {
	if _, err := Parse([]byte("request_timeout: -1s\n")); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("output: [unterminated\n"))
	testutil.AssertErrorContains(t, err, "parsing config")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want a not-exist error", err)
	}
	testutil.AssertErrorContains(t, err, "reading config")
}

func useHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestLoadDefault_MissingFileUsesDefaults(t *testing.T) {
	useHome(t)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadDefault_ReadsHomeFile(t *testing.T) {
	home := useHome(t)
	if err := os.WriteFile(filepath.Join(home, FileName), []byte("case_sensitive: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.CaseSensitive {
		t.Errorf("CaseSensitive = false, want true from %s", FileName)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := testutil.WriteFile(t, FileName, "output: json\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != FileName || strings.HasPrefix(path, "~") {
		t.Errorf("DefaultPath = %q, want expanded ~/%s", path, FileName)
	}
}

func newFlags() *pflag.FlagSet {
	set := pflag.NewFlagSet("test", pflag.ContinueOnError)
	set.String("kubeconfig", "", "")
	set.String("context", "", "")
	set.StringP("output", "o", "text", "")
	set.Bool("no-color", false, "")
	set.Bool("accessible", false, "")
	set.Bool("verbose", false, "")
	set.Duration("request-timeout", DefaultRequestTimeout, "")
	set.Bool("case-sensitive", false, "")
	return set
}

func TestResolve_FileOnly(t *testing.T) {
	file := &Config{Output: "yaml", Context: "staging", RequestTimeout: time.Minute}

	cfg, err := Resolve(file, newFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "yaml" || cfg.Context != "staging" || cfg.RequestTimeout != time.Minute {
		t.Errorf("unset flags should not override file values: %+v", cfg)
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	t.Setenv("KSECRET_OUTPUT", "json")
	t.Setenv("KSECRET_NO_COLOR", "true")
	t.Setenv("KSECRET_REQUEST_TIMEOUT", "45s")
	file := Default()

	cfg, err := Resolve(&file, newFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "json" || !cfg.NoColor || cfg.RequestTimeout != 45*time.Second {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestResolve_FlagOverridesEnv(t *testing.T) {
	t.Setenv("KSECRET_OUTPUT", "json")
	t.Setenv("KSECRET_CONTEXT", "from-env")
	fs := newFlags()
	if err := fs.Parse([]string{"-o", "yaml", "--request-timeout", "2s", "--verbose"}); err != nil {
		t.Fatal(err)
	}
	file := Default()

	cfg, err := Resolve(&file, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "yaml" {
		t.Errorf("Output = %q, want flag value yaml", cfg.Output)
	}
	if cfg.Context != "from-env" {
		t.Errorf("Context = %q, want env value", cfg.Context)
	}
	if cfg.RequestTimeout != 2*time.Second || !cfg.Verbose {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestResolve_InvalidEnvOutput(t *testing.T) {
	t.Setenv("KSECRET_OUTPUT", "xml")
	file := Default()

	if _, err := Resolve(&file, nil); err == nil {
		t.Fatal("expected validation error for bad env output")
	}
}

func TestResolve_CaseSensitiveFlag(t *testing.T) {
	flags := newFlags()
	if err := flags.Parse([]string{"--case-sensitive"}); err != nil {
		t.Fatal(err)
	}
	file := Default()

	cfg, err := Resolve(&file, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.CaseSensitive {
		t.Error("CaseSensitive = false, want true from flag")
	}
}
