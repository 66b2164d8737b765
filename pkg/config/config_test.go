package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raymyers/littlec/pkg/logger"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if strings.Join(cfg.Builtins, ",") != "prints,printd,read" {
		t.Errorf("default builtins = %v", cfg.Builtins)
	}
	if cfg.Dump.IR || cfg.Dump.CFG || cfg.Dump.AST || cfg.Renumber {
		t.Errorf("default dumps should be off: %+v", cfg)
	}
}

func TestDefaultBuiltinsCopied(t *testing.T) {
	cfg := Default()
	cfg.Builtins[0] = "changed"
	if Default().Builtins[0] != "prints" {
		t.Error("Default() shares its builtins slice")
	}
}

func TestDecode(t *testing.T) {
	input := `
builtins: [putc, getc]
log:
  level: debug
  format: json
  source: true
dump:
  ir: true
  cfg: true
renumber: true
`
	cfg, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if strings.Join(cfg.Builtins, ",") != "putc,getc" {
		t.Errorf("builtins = %v", cfg.Builtins)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || !cfg.Log.Source {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !cfg.Dump.IR || !cfg.Dump.CFG || cfg.Dump.AST {
		t.Errorf("dump = %+v", cfg.Dump)
	}
	if !cfg.Renumber {
		t.Error("renumber not set")
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader("dump:\n  ast: true\n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(cfg.Builtins) != 3 || cfg.Log.Level != "warn" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Log.Format)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown key", "verbose: true\n", "verbose"},
		{"bad level", "log:\n  level: loud\n", "log level"},
		{"bad format", "log:\n  format: xml\n", "log format"},
		{"empty builtin", "builtins: [prints, '']\n", "builtin"},
		{"wrong shape", "builtins: prints\n", "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "littlec.yaml")
	if err := os.WriteFile(path, []byte("renumber: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Renumber {
		t.Error("renumber not loaded")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("log:\n  level: loud\n"), 0644)
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("Load(bad) error = %v, want it to name the file", err)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	cfg.Log.Source = true
	lc, err := cfg.Logger(nil)
	if err != nil {
		t.Fatal(err)
	}
	if lc.Level != logger.LevelDebug || lc.Format != "json" || lc.Output == nil || !lc.AddSource {
		t.Errorf("logger config = %+v", lc)
	}
}
