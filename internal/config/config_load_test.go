package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

func setArgs(args []string) {
	os.Args = args
}

func clearEnvVars() {
	os.Unsetenv("MCP_PDF_MODE")
	os.Unsetenv("MCP_PDF_HOST")
	os.Unsetenv("MCP_PDF_PORT")
	os.Unsetenv("MCP_PDF_DIR")
	os.Unsetenv("MCP_PDF_LOGLEVEL")
	os.Unsetenv("MCP_PDF_MAXFILESIZE")
	os.Unsetenv("MCP_PDF_FETCHTIMEOUT")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"mcp-pdf-inspector"})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("Mode = %v, want stdio", cfg.Mode)
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %v, want 127.0.0.1", cfg.Host)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %v, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, DefaultFetchTimeout)
	}
	if cfg.PDFDirectory == "" {
		t.Error("PDFDirectory should not be empty")
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name             string
		argsTemplate     []string
		wantMode         string
		wantHost         string
		wantPort         int
		wantLogLevel     string
		wantMaxFileSize  int64
		wantFetchTimeout time.Duration
	}{
		{
			name:             "stdio mode with custom directory",
			argsTemplate:     []string{"mcp-pdf-inspector", "--dir=%s"},
			wantMode:         "stdio",
			wantHost:         "127.0.0.1",
			wantPort:         8080,
			wantLogLevel:     "info",
			wantMaxFileSize:  100 * 1024 * 1024,
			wantFetchTimeout: DefaultFetchTimeout,
		},
		{
			name:             "server mode",
			argsTemplate:     []string{"mcp-pdf-inspector", "--mode=server", "--dir=%s"},
			wantMode:         "server",
			wantHost:         "127.0.0.1",
			wantPort:         8080,
			wantLogLevel:     "info",
			wantMaxFileSize:  100 * 1024 * 1024,
			wantFetchTimeout: DefaultFetchTimeout,
		},
		{
			name:             "server mode with custom host and port",
			argsTemplate:     []string{"mcp-pdf-inspector", "--mode=server", "--host=0.0.0.0", "--port=9090", "--dir=%s"},
			wantMode:         "server",
			wantHost:         "0.0.0.0",
			wantPort:         9090,
			wantLogLevel:     "info",
			wantMaxFileSize:  100 * 1024 * 1024,
			wantFetchTimeout: DefaultFetchTimeout,
		},
		{
			name:             "debug logging",
			argsTemplate:     []string{"mcp-pdf-inspector", "--loglevel=debug", "--dir=%s"},
			wantMode:         "stdio",
			wantHost:         "127.0.0.1",
			wantPort:         8080,
			wantLogLevel:     "debug",
			wantMaxFileSize:  100 * 1024 * 1024,
			wantFetchTimeout: DefaultFetchTimeout,
		},
		{
			name:             "custom max file size",
			argsTemplate:     []string{"mcp-pdf-inspector", "--maxfilesize=50000000", "--dir=%s"},
			wantMode:         "stdio",
			wantHost:         "127.0.0.1",
			wantPort:         8080,
			wantLogLevel:     "info",
			wantMaxFileSize:  50000000,
			wantFetchTimeout: DefaultFetchTimeout,
		},
		{
			name:             "custom fetch timeout",
			argsTemplate:     []string{"mcp-pdf-inspector", "--fetchtimeout=90s", "--dir=%s"},
			wantMode:         "stdio",
			wantHost:         "127.0.0.1",
			wantPort:         8080,
			wantLogLevel:     "info",
			wantMaxFileSize:  100 * 1024 * 1024,
			wantFetchTimeout: 90 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
				resetFlags()
				clearEnvVars()
			}()

			tempDir := t.TempDir()

			args := make([]string, len(tt.argsTemplate))
			for i, arg := range tt.argsTemplate {
				if arg == "--dir=%s" {
					args[i] = "--dir=" + tempDir
				} else {
					args[i] = arg
				}
			}

			setArgs(args)
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			if cfg.Mode != tt.wantMode {
				t.Errorf("Mode = %v, want %v", cfg.Mode, tt.wantMode)
			}
			if cfg.Host != tt.wantHost {
				t.Errorf("Host = %v, want %v", cfg.Host, tt.wantHost)
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", cfg.Port, tt.wantPort)
			}
			if cfg.LogLevel != tt.wantLogLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.wantLogLevel)
			}
			if cfg.MaxFileSize != tt.wantMaxFileSize {
				t.Errorf("MaxFileSize = %v, want %v", cfg.MaxFileSize, tt.wantMaxFileSize)
			}
			if cfg.FetchTimeout != tt.wantFetchTimeout {
				t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, tt.wantFetchTimeout)
			}
			if cfg.PDFDirectory == "" {
				t.Error("PDFDirectory should not be empty")
			}
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()

	os.Setenv("MCP_PDF_MODE", "server")
	os.Setenv("MCP_PDF_HOST", "192.168.1.1")
	os.Setenv("MCP_PDF_PORT", "3000")
	os.Setenv("MCP_PDF_DIR", tempDir)
	os.Setenv("MCP_PDF_LOGLEVEL", "warn")
	os.Setenv("MCP_PDF_MAXFILESIZE", "200000000")
	os.Setenv("MCP_PDF_FETCHTIMEOUT", "45s")

	setArgs([]string{"mcp-pdf-inspector"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "server" {
		t.Errorf("Mode = %v, want server", cfg.Mode)
	}
	if cfg.Host != "192.168.1.1" {
		t.Errorf("Host = %v, want 192.168.1.1", cfg.Host)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %v, want 3000", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("MaxFileSize = %v, want 200000000", cfg.MaxFileSize)
	}
	if cfg.FetchTimeout != 45*time.Second {
		t.Errorf("FetchTimeout = %v, want 45s", cfg.FetchTimeout)
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	os.Setenv("MCP_PDF_MODE", "server")
	os.Setenv("MCP_PDF_HOST", "192.168.1.1")
	os.Setenv("MCP_PDF_PORT", "3000")

	setArgs([]string{"mcp-pdf-inspector", "--mode=stdio", "--host=localhost", "--port=8888"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("Mode = %v, want stdio (flags override env)", cfg.Mode)
	}
	if cfg.Host != "localhost" {
		t.Errorf("Host = %v, want localhost (flags override env)", cfg.Host)
	}
	if cfg.Port != 8888 {
		t.Errorf("Port = %v, want 8888 (flags override env)", cfg.Port)
	}
}

func TestLoadFromFlags_InvalidMode(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"mcp-pdf-inspector", "--mode=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Fatal("LoadFromFlags() expected error for invalid mode")
	}
	if !strings.Contains(err.Error(), "mode must be either 'stdio' or 'server'") {
		t.Errorf("error = %v, want error about invalid mode", err)
	}
}

func TestLoadFromFlags_InvalidPort(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"mcp-pdf-inspector", "--mode=server", "--port=99999", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Fatal("LoadFromFlags() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "port must be between 1 and 65535") {
		t.Errorf("error = %v, want error about invalid port", err)
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"mcp-pdf-inspector", "--loglevel=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Fatal("LoadFromFlags() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("error = %v, want error about invalid log level", err)
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"mcp-pdf-inspector", "--version"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Fatal("LoadFromFlags() expected version error")
	}
	if err.Error() != "version requested" {
		t.Errorf("error = %v, want 'version requested'", err)
	}
}
