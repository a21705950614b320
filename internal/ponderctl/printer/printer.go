// Package printer renders chat output for ponderctl. Colors, markdown and
// terminal width are used only when the output is a terminal.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mitchellh/go-wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
)

const (
	defaultWidth = 80
	ruleWidth    = 60
)

// Printer writes user-facing chat output.
type Printer struct {
	out   io.Writer
	tty   bool
	width int

	header lipgloss.Style
	dim    lipgloss.Style

	ok   *color.Color
	warn *color.Color
	bad  *color.Color
	info *color.Color

	markdown *glamour.TermRenderer
}

// New creates a printer for out.
func New(out io.Writer) *Printer {
	tty, width := false, defaultWidth
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tty = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return newPrinter(out, tty, width)
}

func newPrinter(out io.Writer, tty bool, width int) *Printer {
	r := lipgloss.NewRenderer(out)
	profile := termenv.Ascii
	if tty {
		profile = termenv.ANSI256
	}
	r.SetColorProfile(profile)

	p := &Printer{
		out:    out,
		tty:    tty,
		width:  width,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		dim:    r.NewStyle().Faint(true),
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		bad:    color.New(color.FgRed, color.Bold),
		info:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.bad, p.info} {
		if tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	if tty {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithColorProfile(profile),
			glamour.WithWordWrap(width-4),
		)
		if err == nil {
			p.markdown = md
		}
	}
	return p
}

// Width is the column count output is wrapped to.
func (p *Printer) Width() int {
	return p.width
}

func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// Banner prints the interactive welcome text.
func (p *Printer) Banner(title string, rows [][2]string) {
	p.Println(p.header.Render(title))
	p.Println("Ask me anything and I'll show you my reasoning process!")
	for _, r := range rows {
		p.Printf("  %-10s %s\n", r[0]+":", r[1])
	}
	p.Commands("Commands:")
}

// Commands lists the interactive commands.
func (p *Printer) Commands(title string) {
	p.Println(title)
	p.Println("  'quit'    - Exit the chat")
	p.Println("  'context' - Show detailed context information")
	p.Println("  'clear'   - Clear conversation history")
	p.Println("  'help'    - Show this help message")
}

// Response prints the thinking block followed by the final answer.
func (p *Printer) Response(thinking, answer string) {
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	p.Println()
	p.Println(heavy)
	p.Println(p.header.Render("🧠 THINKING PROCESS:"))
	p.Println(heavy)
	p.Println(p.dim.Render(wordwrap.WrapString(thinking, uint(p.width))))
	p.Println()
	p.Println(light)
	p.Println(p.header.Render("💡 FINAL RESPONSE:"))
	p.Println(light)
	p.Println(p.renderMarkdown(answer))
	p.Println(heavy)
}

func (p *Printer) renderMarkdown(s string) string {
	if p.markdown == nil {
		return s
	}
	out, err := p.markdown.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

// ContextUsage prints the usage report and returns its status.
func (p *Printer) ContextUsage(u entity.ContextUsage, messages int) entity.ContextStatus {
	var icon string
	var c *color.Color
	switch u.Status {
	case entity.StatusCritical:
		icon, c = "🔴", p.bad
	case entity.StatusWarning:
		icon, c = "🟡", p.warn
	default:
		icon, c = "🟢", p.ok
	}

	p.Printf("\n📊 CONTEXT USAGE: %s %s\n", icon, c.Sprint(string(u.Status)))
	p.Printf("   Tokens: %s / %s (%.1f%%)\n", thousands(u.CurrentTokens), thousands(u.MaxTokens), u.UsagePercentage)
	p.Printf("   Messages: %d in history\n", messages)
	switch u.Status {
	case entity.StatusWarning:
		p.Println("   ⚠️  Warning: Approaching context limit!")
	case entity.StatusCritical:
		p.Println("   🚨 Critical: Very close to context limit!")
		p.Println("   💡 Consider clearing history soon")
	}
	p.Printf("   📝 Estimated remaining: ~%s tokens\n", thousands(u.Remaining()))
	return u.Status
}

// ToolsFound announces the calls about to run.
func (p *Printer) ToolsFound(n int) {
	p.Printf("\n🔧 Found %d tool call(s) to execute...\n", n)
}

var _ runtime.ToolObserver = (*Printer)(nil)

func (p *Printer) OnToolStart(call entity.ToolCall) {
	p.Printf("🔧 Executing tool: %s\n", call.Name)
}

func (p *Printer) OnToolDone(call entity.ToolCall, result entity.ToolResult) {
	if result.Success {
		p.Println(p.ok.Sprintf("✅ Tool %s executed successfully", call.Name))
		p.Println(result.Content)
		return
	}
	p.Println(p.bad.Sprintf("❌ Tool %s failed: %s", call.Name, result.Error))
}

// Skipped reports a call the parser could not use.
func (p *Printer) Skipped(s runtime.SkippedCall) {
	p.Println(p.warn.Sprintf("⚠️ Skipped tool call %s(%s): %s", s.Name, s.Args, s.Reason))
}

// Notice prints a dimmed status line.
func (p *Printer) Notice(format string, args ...interface{}) {
	p.Println(p.info.Sprintf(format, args...))
}

// Error prints err in the chat's error style.
func (p *Printer) Error(format string, args ...interface{}) {
	p.Println(p.bad.Sprintf("❌ "+format, args...))
}

// ToolTable prints one row per execution.
func (p *Printer) ToolTable(execs []runtime.ToolExecution) {
	table := uitable.New()
	table.MaxColWidth = uint(p.width)
	table.Wrap = true
	table.AddRow("#", "CALL", "STATUS", "OUTPUT")
	for i, e := range execs {
		status, output := "ok", e.Result.Content
		if !e.Result.Success {
			status, output = "failed", e.Result.Error
		}
		table.AddRow(i+1, e.Call.String(), status, output)
	}
	p.Println(table)
}

// WindowTable prints the known model context windows. active is marked.
func (p *Printer) WindowTable(entries []runtime.ContextWindow, active string, fallback int) {
	table := uitable.New()
	table.AddRow("", "MODEL", "CONTEXT WINDOW")
	for _, e := range entries {
		mark := ""
		if e.Model == active {
			mark = "*"
		}
		table.AddRow(mark, e.Model, thousands(e.Tokens))
	}
	table.AddRow("", "(other)", thousands(fallback))
	p.Println(table)
}

// thousands formats n with comma separators.
func thousands(n int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
