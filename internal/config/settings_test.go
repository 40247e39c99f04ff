package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "out", s.OutputDir)
	assert.Equal(t, "", s.MetricsAddr)
	assert.Equal(t, "csv", s.TraceFormat)
	assert.True(t, s.Plot)
}

func TestLoadFromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	fs.String("trace-format", "csv", "")
	require.NoError(t, fs.Parse([]string{"--log-level=debug", "--trace-format=json"}))

	s, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.TraceFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VARQE_LOG_LEVEL", "trace")
	t.Setenv("VARQE_OUTPUT_DIR", "/tmp/varqe-test")

	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "trace", s.LogLevel)
	assert.Equal(t, "/tmp/varqe-test", s.OutputDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "varqe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: debug\nplot: false\n"), 0o644))
	t.Setenv("VARQE_CONFIG", path)

	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.False(t, s.Plot)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	t.Setenv("VARQE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Settings) {}},
		{name: "bad log level", mutate: func(s *Settings) { s.LogLevel = "verbose" }, wantErr: true},
		{name: "bad trace format", mutate: func(s *Settings) { s.TraceFormat = "xml" }, wantErr: true},
		{name: "empty output dir", mutate: func(s *Settings) { s.OutputDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{LogLevel: "info", OutputDir: "out", TraceFormat: "csv"}
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
