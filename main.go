package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"triphelix-cli/internal/api"
	"triphelix-cli/internal/chat"
	"triphelix-cli/internal/config"
	"triphelix-cli/internal/display"
	"triphelix-cli/internal/export"
	"triphelix-cli/internal/logging"
	"triphelix-cli/internal/samples"
	"triphelix-cli/internal/service"
	"triphelix-cli/internal/stream"
	"triphelix-cli/internal/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	activeProfile string
	jsonOutput    bool
	debugFlag     bool
)

func main() {
	logging.Preinit()
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env")
	}

	args := parseGlobalFlags(os.Args[1:])

	interactive := len(args) == 0 || args[0] == "-i" || args[0] == "--interactive" || args[0] == "interactive"

	cfg, err := loadConfig(interactive)
	if err != nil {
		display.Error(err.Error())
		os.Exit(1)
	}

	logCloser, err := logging.Init(cfg, interactive)
	if err != nil {
		display.Error(err.Error())
		os.Exit(1)
	}
	defer logCloser.Close()

	if interactive {
		if err := tui.Run(version, cfg); err != nil {
			display.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	switch args[0] {
	case "ask":
		err = cmdAsk(cfg, args[1:])
	case "render":
		err = cmdRender(cfg, args[1:])
	case "samples":
		err = cmdSamples(args[1:])
	case "status":
		err = cmdStatus(cfg)
	case "set":
		err = cmdSet(args[1:])
	case "config":
		err = cmdConfig(cfg)
	case "profiles":
		err = cmdProfiles()
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Println(versionString())
	default:
		display.Error(fmt.Sprintf("Unknown command: %s", args[0]))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		slog.Debug("Command failed", "command", args[0], "error", err)
		display.Error(err.Error())
		logCloser.Close()
		os.Exit(1)
	}
}

// loadConfig reads the active profile and overlays the environment and
// global flags.
func loadConfig(interactive bool) (*config.Config, error) {
	cfg, err := config.Load(activeProfile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if debugFlag {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Config loaded", "profile", config.ProfileName(activeProfile), "server", cfg.ServerURL(), "interactive", interactive)
	return cfg, nil
}

// ─── ask ────────────────────────────────────────────────────────────────────

func cmdAsk(cfg *config.Config, args []string) error {
	var sessionID, exportName, startDate string
	var live bool
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-s", "--session":
			if i+1 >= len(args) {
				return fmt.Errorf("--session requires a value")
			}
			i++
			sessionID = args[i]
		case "-e", "--export":
			if i+1 >= len(args) {
				return fmt.Errorf("--export requires a file name")
			}
			i++
			exportName = args[i]
		case "--stream":
			live = true
		case "--start":
			if i+1 >= len(args) {
				return fmt.Errorf("--start requires a date (YYYY-MM-DD)")
			}
			i++
			startDate = args[i]
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) == 0 {
		fmt.Println("Usage: triphelix ask <question> [--session <id>] [--export <file>] [--start <YYYY-MM-DD>]")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println(`  triphelix ask "Plan 3 days in Lisbon"`)
		fmt.Println(`  triphelix ask "Plan a weekend in Rome" --export rome.ics --start 2025-06-06`)
		return nil
	}
	prompt := strings.Join(positional, " ")

	var start time.Time
	if startDate != "" {
		t, err := chat.ParseDate(startDate)
		if err != nil {
			return err
		}
		start = t
	}

	if sessionID == "" {
		sessionID = cfg.SessionID
	}
	ctrl := chat.NewController(sessionID)
	client := api.NewClient(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("\n %s── ✈ TripHelix ────────────────────────────────────────────────────────────%s\n", display.Dim, display.Reset)
	fmt.Println()
	fmt.Printf("    %sPrompt:%s   %s\n", display.Dim, display.Reset, prompt)
	fmt.Printf("    %sSession:%s  %s\n", display.Dim, display.Reset, ctrl.SessionID())
	fmt.Println()

	display.Spinner("Contacting the travel assistant...")
	started := false
	printer := display.NewLinePrinter(os.Stdout)
	res, err := ctrl.Run(ctx, client, prompt, chat.KindPlainText, func(s stream.State) {
		if !started && !service.IsTrivialContent(s.Text) {
			started = true
			display.ClearLine()
		}
		if live && started {
			printer.Update(s.Text)
		}
	})
	if !started {
		display.ClearLine()
	}
	if live {
		printer.Flush()
	}
	if err != nil {
		return askError(ctrl, err)
	}

	last, _ := ctrl.Conversation().Last()
	if last.Failed {
		display.Warn(last.Content)
		return nil
	}

	switch {
	case !live:
		fmt.Println(display.RenderAnswer(res.Normalized, res.Table, 0))
	case res.HasTable():
		fmt.Println()
		fmt.Println(display.RenderTable(res.Table, 0))
	}
	fmt.Printf(" %s──────────────────────────────────────────────────────────────────────────%s\n", display.Dim, display.Reset)

	if exportName == "" {
		if res.Itinerary || res.HasTable() {
			fmt.Printf("\n  %sTip:%s Add %s--export trip.html%s or %s--export trip.ics%s to save this itinerary.\n\n",
				display.Dim, display.Reset, display.Cyan, display.Reset, display.Cyan, display.Reset)
		}
		return nil
	}

	path, err := export.Write(export.Itinerary{HTML: res.HTML, Table: res.Table, Start: start}, cfg.ExportPath(exportName))
	if err != nil {
		return err
	}
	display.Success("Saved " + path)
	return nil
}

// ─── render ─────────────────────────────────────────────────────────────────

// cmdRender runs the completion pipeline on a saved answer without a
// backend.
func cmdRender(cfg *config.Config, args []string) error {
	var asHTML bool
	var exportName, sampleName string
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--html":
			asHTML = true
		case "-e", "--export":
			if i+1 >= len(args) {
				return fmt.Errorf("--export requires a file name")
			}
			i++
			exportName = args[i]
		case "--sample":
			if i+1 >= len(args) {
				return fmt.Errorf("--sample requires a name (see: triphelix samples)")
			}
			i++
			sampleName = args[i]
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 1 && sampleName == "" {
		fmt.Println("Usage: triphelix render <file|-> [--html] [--export <file>]")
		fmt.Println("       triphelix render --sample <name> [--html] [--export <file>]")
		return nil
	}

	var raw string
	if sampleName != "" {
		all, err := samples.Load("")
		if err != nil {
			return err
		}
		s, err := samples.Find(all, sampleName)
		if err != nil {
			return err
		}
		raw = s.Answer
	} else {
		var err error
		raw, err = readInput(positional[0])
		if err != nil {
			return err
		}
	}
	res := service.Finalize(raw)

	switch {
	case jsonOutput:
		if err := printJSON(renderSummary(res)); err != nil {
			return err
		}
	case asHTML:
		fmt.Println(res.HTML)
	default:
		fmt.Println(display.RenderAnswer(res.Normalized, res.Table, 0))
	}

	if exportName != "" {
		path, err := export.Write(export.Itinerary{HTML: res.HTML, Table: res.Table}, cfg.ExportPath(exportName))
		if err != nil {
			return err
		}
		display.Success("Saved " + path)
	}
	return nil
}

// askError describes a failed ask turn. Rejected submissions never opened
// a turn, so only a failed turn carries the assistant's error text.
func askError(ctrl *chat.Controller, err error) error {
	if errors.Is(err, chat.ErrEmptyMessage) || errors.Is(err, chat.ErrTurnInFlight) || errors.Is(err, chat.ErrInvalidDate) {
		return err
	}
	last, ok := ctrl.Conversation().Last()
	if !ok || last.Role != chat.RoleAssistant || last.Content == "" {
		return err
	}
	return fmt.Errorf("%s (%w)", last.Content, err)
}

func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

type renderRow struct {
	Day       int    `json:"day"`
	Date      string `json:"date,omitempty"`
	Morning   string `json:"morning,omitempty"`
	Afternoon string `json:"afternoon,omitempty"`
	Evening   string `json:"evening,omitempty"`
}

type renderOutput struct {
	Normalized string      `json:"normalized"`
	HTML       string      `json:"html"`
	Itinerary  bool        `json:"itinerary"`
	Days       []renderRow `json:"days,omitempty"`
}

func renderSummary(res service.Result) renderOutput {
	out := renderOutput{
		Normalized: res.Normalized,
		HTML:       res.HTML,
		Itinerary:  res.Itinerary,
	}
	if res.Table != nil {
		for _, r := range res.Table.Rows {
			out.Days = append(out.Days, renderRow{
				Day:       r.Day,
				Date:      r.DateLabel,
				Morning:   r.Morning,
				Afternoon: r.Afternoon,
				Evening:   r.Evening,
			})
		}
	}
	return out
}

// ─── samples ────────────────────────────────────────────────────────────────

func cmdSamples(args []string) error {
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	all, err := samples.Load(file)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(all)
	}

	display.Header(fmt.Sprintf("Sample answers (%d)", len(all)))
	for _, s := range all {
		fmt.Printf("  %s%-10s%s %s %s(%d days · %s)%s\n",
			display.Cyan, s.Name, display.Reset, s.Title, display.Dim, s.Days, strings.Join(s.Tags, ", "), display.Reset)
	}
	fmt.Printf("\n  %sTip:%s Run %striphelix render --sample <name>%s to format one.\n\n",
		display.Dim, display.Reset, display.Cyan, display.Reset)
	return nil
}

// ─── status ─────────────────────────────────────────────────────────────────

func cmdStatus(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := api.NewClient(cfg)
	resp, err := client.Health(ctx)

	if jsonOutput {
		out := map[string]any{"server": cfg.ServerURL(), "healthy": err == nil && resp.Healthy()}
		if err != nil {
			out["error"] = err.Error()
		} else {
			out["status"] = resp.Status
		}
		return printJSON(out)
	}

	display.Info("Server:", cfg.ServerURL())
	if err != nil {
		display.Info("Status:", display.HealthLabel(""))
		return err
	}
	display.Info("Status:", display.HealthLabel(resp.Status))
	return nil
}

// ─── set ────────────────────────────────────────────────────────────────────

func cmdSet(args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: triphelix set <key> <value>")
		fmt.Println()
		fmt.Println("Keys:")
		fmt.Println("  server      Travel assistant URL  (e.g. http://localhost:8000)")
		fmt.Println("  session     Session id sent with every message")
		fmt.Println("  export-dir  Directory for exported itineraries")
		fmt.Println("  log-file    Write JSON logs to this file")
		fmt.Println("  debug       true or false")
		return nil
	}

	cfg, err := config.Load(activeProfile)
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := applySetting(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	display.Success(fmt.Sprintf("%s set to %s", key, value))
	return nil
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "server":
		cfg.Server = value
	case "session":
		cfg.SessionID = value
	case "export-dir":
		cfg.ExportDir = value
	case "log-file":
		cfg.LogFile = value
	case "debug":
		switch strings.ToLower(value) {
		case "true", "on", "1":
			cfg.Debug = true
		case "false", "off", "0":
			cfg.Debug = false
		default:
			return fmt.Errorf("debug must be true or false, got %q", value)
		}
	default:
		return fmt.Errorf("unknown config key: %s (valid: server, session, export-dir, log-file, debug)", key)
	}
	return nil
}

// ─── config ─────────────────────────────────────────────────────────────────

func cmdConfig(cfg *config.Config) error {
	if jsonOutput {
		return printJSON(map[string]any{
			"profile":    config.ProfileName(activeProfile),
			"server":     cfg.ServerURL(),
			"session_id": cfg.SessionID,
			"export_dir": cfg.ExportDir,
			"log_file":   cfg.LogFile,
			"debug":      cfg.Debug,
		})
	}

	notSet := display.Dim + "(not set)" + display.Reset
	val := func(s string) string {
		if s == "" {
			return notSet
		}
		return s
	}

	display.Header("TripHelix Configuration")
	display.Info("Profile:", config.ProfileName(activeProfile))
	display.Info("Server:", cfg.ServerURL())
	display.Info("Session:", val(cfg.SessionID))
	display.Info("Export dir:", val(cfg.ExportDir))
	display.Info("Log file:", val(cfg.LogFile))
	display.Info("Debug:", fmt.Sprintf("%t", cfg.Debug))
	fmt.Println()

	return nil
}

// ─── profiles ───────────────────────────────────────────────────────────────

func cmdProfiles() error {
	profiles, err := config.ListProfiles()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(profiles)
	}

	display.Header(fmt.Sprintf("Profiles (%d)", len(profiles)))

	if len(profiles) == 0 {
		display.Warn("No profiles found.")
		return nil
	}

	for _, p := range profiles {
		marker := " "
		if p == config.ProfileName(activeProfile) {
			marker = display.Green + "●" + display.Reset
		}
		fmt.Printf("  %s %s\n", marker, p)
	}
	fmt.Println()

	return nil
}

// ─── helpers ────────────────────────────────────────────────────────────────

func parseGlobalFlags(args []string) []string {
	var remaining []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--profile":
			if i+1 < len(args) {
				i++
				activeProfile = args[i]
			}
			continue
		case "-j", "--json":
			jsonOutput = true
			continue
		case "--debug":
			debugFlag = true
			continue
		}
		remaining = append(remaining, args[i])
	}
	return remaining
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func versionString() string {
	if commit == "none" {
		return "triphelix " + version
	}
	return fmt.Sprintf("triphelix %s\n  commit: %s\n  built:  %s", version, commit, date)
}

// ─── usage ──────────────────────────────────────────────────────────────────

func printUsage() {
	fmt.Printf(`%sTripHelix CLI%s · conversational trip planner (%s)

%sUsage:%s
  triphelix                                            Launch interactive mode (default)
  triphelix [--profile <name>] [-j] <command> [args]   Run a specific command

%sPlanning:%s
  ask "<question>"            Ask the travel assistant (streams output)
    -s, --session <id>        Use this session id
    --stream                  Print the answer line by line as it arrives
    -e, --export <file>       Save the itinerary (.html or .ics)
    --start <YYYY-MM-DD>      First day for .ics exports (default: today)
  render <file|->             Format a saved answer offline
    --sample <name>           Format a built-in sample answer instead
    --html                    Print sanitized HTML instead
    -e, --export <file>       Save the itinerary (.html or .ics)

  samples [file]              List sample answers (built-in or from a YAML file)

%sBackend:%s
  status                      Check the travel assistant health

%sSettings:%s
  config                      Show current configuration
  set <key> <value>           server, session, export-dir, log-file, debug
  profiles                    List all config profiles
  --profile <name>            Use a named config profile (default: unnamed)
  --debug                     Verbose logging for this run
  -j, --json                  JSON output for config, profiles, render, samples, status

%sExamples:%s
  triphelix                                            # Start interactive mode
  triphelix set server http://localhost:8000
  triphelix ask "Plan 3 days in Lisbon" --export lisbon.ics --start 2025-06-06
  cat answer.md | triphelix render - --html

`, display.Bold, display.Reset, version,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset)
}
