package tui

import (
	"context"
	"fmt"
	"strings"

	"triphelix-cli/internal/api"
	"triphelix-cli/internal/chat"
	"triphelix-cli/internal/config"
	"triphelix-cli/internal/display"
	"triphelix-cli/internal/export"
	"triphelix-cli/internal/service"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Input dispatcher ───────────────────────────────────────────────────────

func (m model) dispatchInput(input string) (tea.Model, tea.Cmd) {
	if input == "?" {
		return m.cmdHelp()
	}
	if strings.HasPrefix(input, "/") {
		return m.dispatchCommand(input)
	}
	return m.startTurn(input, chat.KindPlainText)
}

func (m model) dispatchCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help", "/h":
		return m.cmdHelp()
	case "/config":
		return m.cmdConfig()
	case "/clear":
		return m.cmdClear()
	case "/date":
		return m.cmdDate(args)
	case "/export":
		return m.cmdExport(args)
	case "/history":
		return m.cmdHistory()
	case "/new":
		return m.cmdNew()
	case "/status":
		return m.cmdStatus()
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	default:
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Unknown command: %s (type /help)", cmd)))
	}
}

// ─── /help ──────────────────────────────────────────────────────────────────

func (m model) cmdHelp() (tea.Model, tea.Cmd) {
	pad := func(s string, w int) string {
		for len(s) < w {
			s += " "
		}
		return s
	}

	lines := []tea.Cmd{
		tea.Println(""),
		tea.Println(dimStyle.Render("  Shortcuts:")),
		tea.Println(""),
		tea.Println("  " + pad(hintKeyStyle.Render("/date <YYYY-MM-DD>"), 30) + dimStyle.Render("Tell the assistant when the trip starts")),
		tea.Println("  " + pad(hintKeyStyle.Render("/export [file]"), 30) + dimStyle.Render("Save the last itinerary (.html or .ics)")),
		tea.Println("  " + pad(hintKeyStyle.Render("/history"), 30) + dimStyle.Render("Show this conversation")),
		tea.Println("  " + pad(hintKeyStyle.Render("/new"), 30) + dimStyle.Render("Start a new conversation")),
		tea.Println("  " + pad(hintKeyStyle.Render("/status"), 30) + dimStyle.Render("Check the backend")),
		tea.Println("  " + pad(hintKeyStyle.Render("/config"), 30) + dimStyle.Render("Show current configuration")),
		tea.Println("  " + pad(hintKeyStyle.Render("/clear"), 30) + dimStyle.Render("Clear the screen")),
		tea.Println("  " + pad(hintKeyStyle.Render("/quit"), 30) + dimStyle.Render("Exit TripHelix")),
		tea.Println(""),
		tea.Println(dimStyle.Render("  Or just describe the trip you want to plan!")),
		tea.Println(""),
	}
	return m, tea.Sequence(lines...)
}

// ─── /config ────────────────────────────────────────────────────────────────

func (m model) cmdConfig() (tea.Model, tea.Cmd) {
	val := func(s string) string {
		if s == "" {
			return dimStyle.Render("(not set)")
		}
		return s
	}

	return m, tea.Sequence(
		tea.Println(""),
		tea.Println(dimStyle.Render("  Configuration:")),
		tea.Println(fmt.Sprintf("    Profile:    %s", config.ProfileName(m.cfg.Profile))),
		tea.Println(fmt.Sprintf("    Server:     %s", m.cfg.ServerURL())),
		tea.Println(fmt.Sprintf("    Session:    %s", m.ctrl.SessionID())),
		tea.Println(fmt.Sprintf("    Export dir: %s", val(m.cfg.ExportDir))),
		tea.Println(fmt.Sprintf("    Log file:   %s", val(m.cfg.LogFile))),
		tea.Println(fmt.Sprintf("    Debug:      %t", m.cfg.Debug)),
		tea.Println(""),
	)
}

// ─── /clear ─────────────────────────────────────────────────────────────────

func (m model) cmdClear() (tea.Model, tea.Cmd) {
	return m, tea.ClearScreen
}

// ─── /date ──────────────────────────────────────────────────────────────────

func (m model) cmdDate(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Usage: /date <YYYY-MM-DD>"))
	}
	return m.startTurn(args[0], chat.KindDateRequest)
}

// ─── /export ────────────────────────────────────────────────────────────────

func (m model) cmdExport(args []string) (tea.Model, tea.Cmd) {
	msg, ok := m.ctrl.LastItinerary()
	if !ok {
		return m, tea.Println(errorMsgStyle.Render("  ✗ No itinerary to export yet. Ask for a trip plan first."))
	}

	name := export.DefaultName
	if len(args) > 0 {
		name = args[0]
	}

	it := export.Itinerary{HTML: msg.Content, Table: msg.Table}
	if start, ok := m.ctrl.StartDate(); ok {
		it.Start = start
	}

	path, err := export.Write(it, m.cfg.ExportPath(name))
	if err != nil {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Export failed: %v", err)))
	}
	return m, tea.Println(successMsgStyle.Render("  ✓ Saved " + path))
}

// ─── /history ───────────────────────────────────────────────────────────────

func (m model) cmdHistory() (tea.Model, tea.Cmd) {
	msgs := m.ctrl.Conversation().Messages()
	if len(msgs) == 0 {
		return m, tea.Println(dimStyle.Render("  No messages yet."))
	}

	lines := []tea.Cmd{tea.Println("")}
	for _, msg := range msgs {
		lines = append(lines, tea.Println("  "+display.RoleLabel(string(msg.Role))))
		lines = append(lines, tea.Println(indentText(m.messageText(msg), "    ")))
		lines = append(lines, tea.Println(""))
	}
	return m, tea.Sequence(lines...)
}

// messageText renders one stored message for the terminal.
func (m model) messageText(msg chat.Message) string {
	switch {
	case msg.Kind == chat.KindRenderedHTML:
		return display.RenderAnswer(msg.Markdown, msg.Table, m.answerWidth())
	case msg.Kind == chat.KindDateRequest:
		return "Trip starts " + msg.Content
	case msg.Failed:
		return warnMsgStyle.Render(msg.Content)
	case msg.Content == "":
		return dimStyle.Render("(waiting)")
	}
	return msg.Content
}

// ─── /new ───────────────────────────────────────────────────────────────────

func (m model) cmdNew() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Reset(""); err != nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ " + err.Error()))
	}
	return m, tea.Println(successMsgStyle.Render(fmt.Sprintf("  ✓ New conversation · session %s", truncateUUID(m.ctrl.SessionID()))))
}

// ─── /status ────────────────────────────────────────────────────────────────

func (m model) cmdStatus() (tea.Model, tea.Cmd) {
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ No backend configured."))
	}
	return m, tea.Sequence(
		tea.Println(statusStyle.Render("  ⟳ Checking "+m.cfg.ServerURL()+"...")),
		checkHealth(m.client),
	)
}

func printHealth(msg healthMsg) tea.Cmd {
	if msg.err != nil {
		return tea.Println(warnMsgStyle.Render(fmt.Sprintf("  ! Backend unreachable: %v", msg.err)))
	}
	return tea.Println("  " + display.HealthLabel(msg.status))
}

// ─── Chat turn ──────────────────────────────────────────────────────────────

func (m model) startTurn(content string, kind chat.Kind) (tea.Model, tea.Cmd) {
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ No backend configured. Use: triphelix set server <url>"))
	}
	if err := m.ctrl.Submit(content, kind); err != nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ " + err.Error()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	req := api.ChatRequest{Message: strings.TrimSpace(content), SessionID: m.ctrl.SessionID()}

	m.mode = modeStreaming
	m.cancel = cancel
	m.partial = ""
	m.lastStatus = ""
	m.streamCh = beginStream(ctx, m.client, req)

	echo := strings.TrimSpace(content)
	if kind == chat.KindDateRequest {
		echo = "Trip starts " + echo
	}

	return m, tea.Sequence(
		tea.Println(""),
		tea.Println(userPromptStyle.Render("  ❯ ")+echo),
		waitForStream(m.streamCh),
	)
}

func (m model) answerWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-4, 40)
}

// printAnswer prints a completed turn: the day table when one was found,
// otherwise the rendered markdown.
func (m model) printAnswer(res service.Result) tea.Cmd {
	last, _ := m.ctrl.Conversation().Last()
	if last.Failed {
		return tea.Sequence(
			tea.Println(""),
			tea.Println(warnMsgStyle.Render("  ! "+last.Content)),
			tea.Println(""),
		)
	}

	body := display.RenderAnswer(res.Normalized, res.Table, m.answerWidth())
	lines := []tea.Cmd{
		tea.Println(""),
		tea.Println(indentText(body, "  ")),
	}
	if res.Itinerary || res.HasTable() {
		lines = append(lines,
			tea.Println(""),
			tea.Println(exportHintStyle.Render("  ✈ Save it with /export trip.html or /export trip.ics")),
		)
	}
	lines = append(lines, tea.Println(""))
	return tea.Sequence(lines...)
}

func (m model) printFailure(err error) tea.Cmd {
	text := chat.FallbackText
	if last, ok := m.ctrl.Conversation().Last(); ok && last.Failed {
		text = last.Content
	}
	return tea.Sequence(
		tea.Println(""),
		tea.Println(errorMsgStyle.Render("  ✗ "+text)),
		tea.Println(dimStyle.Render("    "+err.Error())),
		tea.Println(""),
	)
}
