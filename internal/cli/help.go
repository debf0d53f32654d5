package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gokilo/internal/configloader"
	"github.com/yaklabco/gokilo/internal/ui/pretty"
)

// keyBinding is one line of the Keys help section.
type keyBinding struct {
	keys string
	help string
}

//nolint:gochecknoglobals // fixed help table
var keyBindings = []keyBinding{
	{"Ctrl-S", "save; an untitled buffer asks for a name"},
	{"Ctrl-Q", "quit; a modified buffer needs three presses"},
	{"Ctrl-F", "find; arrows step between matches, Enter keeps, Esc cancels"},
	{"Arrows", "move; left and right wrap across lines"},
	{"Home/End", "start or end of the line"},
	{"PgUp/PgDn", "one screen up or down"},
	{"Backspace/Del", "delete before or under the cursor"},
}

// HelpStyles holds the lipgloss styles of the help screen.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Flag: plain, Description: plain, Dim: plain}
	}
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for the root command.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a formatter for the given --color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{ command .UseLine }}

{{ heading "Keys:" }}
{{ keysUsage }}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagsUsage .InheritedFlags }}
{{- end}}

{{ heading "Environment:" }}
{{ envUsage }}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"dim":        h.styles.Dim.Render,
		"trimRight":  trimTrailingWhitespaces,
		"flagsUsage": h.flagsUsage,
		"keysUsage":  h.keysUsage,
		"envUsage":   h.envUsage,
	}
}

// ApplyToCommand installs the styled usage and help functions on cmd.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagsUsage restyles pflag's aligned usage text line by line.
func (h *HelpFormatter) flagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles "  -f, --flag type   description". The flag names are
// colored, the value type is dimmed.
func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	def, desc, ok := splitColumns(trimmed)
	if !ok {
		return line
	}

	tokens := strings.Fields(def)
	for i, tok := range tokens {
		if !strings.HasPrefix(tok, "-") {
			tokens[i] = h.styles.Dim.Render(tok)
			continue
		}
		name, comma := strings.CutSuffix(tok, ",")
		tokens[i] = h.styles.Flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}
	return indent + strings.Join(tokens, " ") + "   " + h.styles.Description.Render(desc)
}

// splitColumns splits line at the first run of two or more spaces.
func splitColumns(line string) (string, string, bool) {
	idx := strings.Index(line, "  ")
	if idx < 0 {
		return line, "", false
	}
	rest := strings.TrimLeft(line[idx:], " ")
	if rest == "" {
		return line, "", false
	}
	return line[:idx], rest, true
}

func (h *HelpFormatter) keysUsage() string {
	rows := make([][2]string, 0, len(keyBindings))
	for _, kb := range keyBindings {
		rows = append(rows, [2]string{kb.keys, kb.help})
	}
	return h.twoColumns(rows)
}

// envUsage lists the GOKILO_* overrides.
func (h *HelpFormatter) envUsage() string {
	vars := configloader.ListEnvVars()
	rows := make([][2]string, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, [2]string{v.Name, v.Help})
	}
	return h.twoColumns(rows)
}

func (h *HelpFormatter) twoColumns(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+h.styles.Flag.Render(rpad(r[0], width))+"   "+h.styles.Description.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
