package proctop

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != time.Second {
		t.Fatalf("expected 1s interval, got %v", cfg.Interval)
	}
	if cfg.Limit != 5 {
		t.Fatalf("expected limit 5, got %d", cfg.Limit)
	}
	if cfg.Once || cfg.Metrics || cfg.LogFile != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  any
	}{
		{"zeroInterval", "interval", "0s"},
		{"negativeInterval", "interval", "-2s"},
		{"zeroLimit", "limit", 0},
		{"negativeLimit", "limit", -1},
	}
	for _, tc := range cases {
		v := viper.New()
		SetDefaults(v)
		v.Set(tc.key, tc.val)
		if _, err := LoadConfig(v); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PROCTOP_LIMIT", "9")
	t.Setenv("PROCTOP_INTERVAL", "250ms")

	v := viper.New()
	v.SetEnvPrefix("proctop")
	v.AutomaticEnv()
	SetDefaults(v)

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Limit != 9 || cfg.Interval != 250*time.Millisecond {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := "limit: 3\ninterval: 2s\nlog_file: /tmp/proctop.log\n"
	if err := os.WriteFile(filepath.Join(dir, "proctop.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	SetDefaults(v)
	if err := ReadConfigFile(v, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Limit != 3 || cfg.Interval != 2*time.Second || cfg.LogFile != "/tmp/proctop.log" {
		t.Fatalf("file not applied: %+v", cfg)
	}
}

func TestReadConfigFileMissing(t *testing.T) {
	v := viper.New()
	if err := ReadConfigFile(v, t.TempDir()); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}

func TestReadConfigFileMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "proctop.yaml"), []byte("limit: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ReadConfigFile(viper.New(), dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestReadConfigFileIgnoresBinaryNamedProctop(t *testing.T) {
	dir := t.TempDir()
	elf := []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00, 0x00, 0x00}
	if err := os.WriteFile(filepath.Join(dir, "proctop"), elf, 0o755); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	SetDefaults(v)
	if err := ReadConfigFile(v, dir); err != nil {
		t.Fatalf("executable in config dir must not be parsed: %v", err)
	}
	if _, err := LoadConfig(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadConfigFileSearchOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(first, "proctop"), []byte("\x00\x01"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(second, "proctop.yml"), []byte("limit: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	SetDefaults(v)
	if err := ReadConfigFile(v, first, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.GetInt("limit"); got != 7 {
		t.Fatalf("expected limit 7 from proctop.yml, got %d", got)
	}
}
