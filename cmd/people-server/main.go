// ABOUTME: Entry point for people-server
// ABOUTME: Serves the person CRUD API and provides init and health commands

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/people-api/internal/config"
	"github.com/2389/people-api/internal/server"
	"github.com/2389/people-api/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                        _
 _ __   ___  ___  _ __ | | ___
| '_ \ / _ \/ _ \| '_ \| |/ _ \
| |_) |  __/ (_) | |_) | |  __/
| .__/ \___|\___/| .__/|_|\___|
|_|              |_|
`

// getConfigPath returns the path to the server config file.
// Priority: PEOPLE_CONFIG env var > XDG_CONFIG_HOME/people/server.yaml > ~/.config/people/server.yaml
func getConfigPath() string {
	if envPath := os.Getenv("PEOPLE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "server.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "people", "server.yaml")
}

// getDataPath returns the path to the people data directory.
// Priority: XDG_DATA_HOME/people > ~/.local/share/people
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "people")
}

// defaultDatabasePath returns where a driver keeps its data under dataDir.
// Badger wants a directory, the sqlite drivers a file.
func defaultDatabasePath(driver, dataDir string) string {
	switch driver {
	case store.DriverBadger:
		return filepath.Join(dataDir, "badger")
	case store.DriverMemory:
		return ""
	default:
		return filepath.Join(dataDir, "people.db")
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: people-server <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the HTTP server")
	fmt.Fprintln(w, "  init     Create a new config file interactively")
	fmt.Fprintln(w, "  health   Check server liveness")
	fmt.Fprintln(w, "  ready    Check server readiness (store reachable)")
	fmt.Fprintln(w, "  version  Print the version")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit(os.Stdin, os.Stdout)
	case "health":
		err = runProbe(ctx, "/health")
	case "ready":
		err = runProbe(ctx, "/health/ready")
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Store:     %s", cfg.Database.Driver)
	if cfg.Database.Path != "" {
		gray.Printf(" (%s)", cfg.Database.Path)
	}
	fmt.Println()
	fmt.Println()

	logger.Info("starting people-server",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"driver", cfg.Database.Driver,
		"version", version,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx)
}

// runProbe requests path on the configured server and fails on any non-200 reply.
func runProbe(ctx context.Context, path string) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s%s", cfg.Server.HTTPAddr, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	fmt.Println(strings.TrimSpace(string(body)))
	return nil
}

// initOptions are the answers collected by runInit.
type initOptions struct {
	HTTPAddr     string
	Driver       string
	DatabasePath string
	LogLevel     string
	LogFormat    string
}

// renderConfig produces the YAML written by runInit.
func renderConfig(opts initOptions) string {
	var cfg strings.Builder
	cfg.WriteString("# people-server configuration\n")
	cfg.WriteString("# Generated by people-server init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  http_addr: %q\n", opts.HTTPAddr))
	cfg.WriteString(fmt.Sprintf("  read_header_timeout: %q\n", config.DefaultReadHeaderTimeout.String()))
	cfg.WriteString(fmt.Sprintf("  shutdown_timeout: %q\n", config.DefaultShutdownTimeout.String()))
	cfg.WriteString("\n")

	cfg.WriteString("database:\n")
	cfg.WriteString(fmt.Sprintf("  driver: %q\n", opts.Driver))
	if opts.DatabasePath != "" {
		cfg.WriteString(fmt.Sprintf("  path: %q\n", opts.DatabasePath))
	}
	cfg.WriteString("\n")

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: %q\n", opts.LogLevel))
	cfg.WriteString(fmt.Sprintf("  format: %q\n", opts.LogFormat))

	return cfg.String()
}

func runInit(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "people-server configuration setup")
	fmt.Fprintln(out, "=================================")
	fmt.Fprintln(out)

	outputFile := prompt(reader, out, "Config file path", getConfigPath())

	if _, err := os.Stat(outputFile); err == nil {
		if !isYes(prompt(reader, out, "File exists. Overwrite?", "no")) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	fmt.Fprintln(out, "\n--- Server Configuration ---")
	opts := initOptions{
		HTTPAddr: prompt(reader, out, "HTTP address", "localhost:8080"),
	}

	fmt.Fprintln(out, "\n--- Database Configuration ---")
	opts.Driver = prompt(reader, out, "Driver (sqlite/sqlite3/badger/memory)", config.DefaultDriver)
	if defaultPath := defaultDatabasePath(opts.Driver, getDataPath()); defaultPath != "" {
		opts.DatabasePath = prompt(reader, out, "Database path", defaultPath)
	}

	fmt.Fprintln(out, "\n--- Logging Configuration ---")
	opts.LogLevel = prompt(reader, out, "Log level (debug/info/warn/error)", "info")
	opts.LogFormat = prompt(reader, out, "Log format (text/json)", "text")

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(outputFile, []byte(renderConfig(opts)), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if opts.DatabasePath != "" {
		dataDir := opts.DatabasePath
		if opts.Driver != store.DriverBadger {
			dataDir = filepath.Dir(opts.DatabasePath)
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		fmt.Fprintf(out, "\nData directory: %s\n", dataDir)
	}

	fmt.Fprintf(out, "Config written to %s\n", outputFile)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  people-server serve")

	return nil
}

func isYes(answer string) bool {
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y"
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(out)
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
