package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/ui"
)

var forceTUI bool

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive case management console",
	Long: `Start the full-screen terminal console for managing recovery cases.

The console connects to the case tracker API and provides:
- A filterable, sortable case list
- Case detail view with in-place editing of status and follow-up notes
- Client and case creation forms

The console runs until quit (q or Ctrl+C).

Examples:
  # Start against the default backend
  recovery-console console

  # Start against a remote backend
  recovery-console console --api https://tracker.example.com`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().BoolVar(&forceTUI, "force-tui", false, "Force TUI mode even in unsupported terminals")
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	logger := log.New(os.Stderr, "[console] ", log.LstdFlags)
	logger.Printf("Terminal info: %s", getTerminalInfo())

	// Test if the TUI can be initialized (unless forced)
	if !forceTUI && !canInitializeTUI() {
		if needsPseudoTTY() {
			logger.Println("No TTY available, using script command for pseudo-TTY...")
			return runWithPseudoTTY(cmd, args)
		}
		logger.Println("TUI cannot be initialized in this terminal environment")
		logger.Println("")
		logger.Println("For full console experience, use:")
		logger.Println("  1. Native terminal (gnome-terminal, iTerm2, etc.)")
		logger.Println("  2. SSH with proper TERM settings")
		logger.Println("")
		logger.Println("Current alternatives:")
		logger.Println("  - Plain listing: recovery-console list cases")
		logger.Println("  - Bulk import:   recovery-console import --dir ./data/incoming")
		return fmt.Errorf("no usable terminal for TUI mode")
	}

	// Route logs to a file while the TUI owns the terminal.
	uiLogger, closeLog := setupUILogger(logger)
	defer closeLog()

	apiClient := api.NewClient(api.Options{
		BaseURL: config.API.BaseURL,
		Logger:  uiLogger,
	})
	uiLogger.Printf("Using API at %s", apiClient.BaseURL())

	app := ui.NewApp(ctx, apiClient, uiLogger)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	logger.Println("Console stopped")
	return nil
}

// setupUILogger creates a file-backed logger so TUI output is not corrupted.
// The returned close function is a no-op when the file could not be created.
func setupUILogger(fallback *log.Logger) (*log.Logger, func()) {
	logDir := filepath.Join(getWorkingDir(), "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fallback.Printf("Warning: could not create logs directory: %v", err)
		return log.New(io.Discard, "[UI] ", log.LstdFlags), func() {}
	}
	logPath := filepath.Join(logDir, "recovery-console-ui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fallback.Printf("Warning: could not create UI log file at %s: %v", logPath, err)
		return log.New(io.Discard, "[UI] ", log.LstdFlags), func() {}
	}
	uiLogger := log.New(logFile, "[UI] ", log.LstdFlags)
	uiLogger.Printf("UI logger initialized (path=%s)", logPath)
	return uiLogger, func() { logFile.Close() }
}

// canInitializeTUI tests if tcell can actually be initialized
func canInitializeTUI() bool {
	screen, err := tcell.NewScreen()
	if err != nil {
		return false
	}

	err = screen.Init()
	if err != nil {
		return false
	}

	// Clean up immediately
	screen.Fini()
	return true
}

// getTerminalInfo returns detailed terminal information
func getTerminalInfo() string {
	var info []string

	term := os.Getenv("TERM")
	if term == "" {
		info = append(info, "TERM=<not set>")
	} else {
		info = append(info, fmt.Sprintf("TERM=%s", term))
	}

	termProgram := os.Getenv("TERM_PROGRAM")
	if termProgram != "" {
		info = append(info, fmt.Sprintf("TERM_PROGRAM=%s", termProgram))
	}

	if width, height := getTerminalSize(); width > 0 && height > 0 {
		info = append(info, fmt.Sprintf("Size=%dx%d", width, height))
	}

	if isTerminal() {
		info = append(info, "TTY=yes")
	} else {
		info = append(info, "TTY=no")
	}

	if supportsColors() {
		info = append(info, "Colors=yes")
	} else {
		info = append(info, "Colors=no")
	}

	return strings.Join(info, ", ")
}

// getExecutableDir returns the directory of the running executable.
// Falls back to current directory on error.
func getExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// getWorkingDir returns the current working directory.
// Falls back to executable directory if os.Getwd fails.
func getWorkingDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	return getExecutableDir()
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	if fileInfo, err := os.Stdout.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// supportsColors checks if terminal supports colors
func supportsColors() bool {
	term := strings.ToLower(os.Getenv("TERM"))

	colorTerms := []string{"color", "256", "truecolor", "24bit"}
	for _, colorTerm := range colorTerms {
		if strings.Contains(term, colorTerm) {
			return true
		}
	}

	if colorTerm := os.Getenv("COLORTERM"); colorTerm != "" {
		return true
	}

	supportedTerms := []string{"xterm", "screen", "tmux", "linux", "ansi"}
	for _, supported := range supportedTerms {
		if strings.Contains(term, supported) {
			return true
		}
	}

	return false
}

// needsPseudoTTY checks if we need to use script command for pseudo-TTY
func needsPseudoTTY() bool {
	// Try to actually open /dev/tty (not just check if it exists)
	if file, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		file.Close()
		return false
	}
	return true
}

// runWithPseudoTTY re-executes the command using script for pseudo-TTY
func runWithPseudoTTY(cmd *cobra.Command, args []string) error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	cmdArgs := []string{"console"}
	cmdArgs = append(cmdArgs, args...)

	hasForceTUI := false
	for _, arg := range args {
		if arg == "--force-tui" {
			hasForceTUI = true
			break
		}
	}
	if !hasForceTUI {
		cmdArgs = append(cmdArgs, "--force-tui")
	}

	quotedExecutable := fmt.Sprintf(`"%s"`, executable)
	quotedArgs := make([]string, len(cmdArgs))
	for i, arg := range cmdArgs {
		quotedArgs[i] = fmt.Sprintf(`"%s"`, arg)
	}

	fullCmd := fmt.Sprintf("TERM=%s %s %s",
		os.Getenv("TERM"),
		quotedExecutable,
		strings.Join(quotedArgs, " "))

	scriptCmd := exec.Command("script", "-qec", fullCmd, "/dev/null")
	scriptCmd.Stdin = os.Stdin
	scriptCmd.Stdout = os.Stdout
	scriptCmd.Stderr = os.Stderr
	scriptCmd.Env = os.Environ()

	return scriptCmd.Run()
}
