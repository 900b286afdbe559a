package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ck3mm/internal/errlog"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func renderConflictsHuman(w io.Writer, r *ConflictReport) error {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("Conflict report (%d mods)", len(r.Mods))))
	sb.WriteString("\n")
	if r.Scan != nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("Scanned %d files, %d definitions in %s",
			r.Scan.FilesScanned, r.Scan.Definitions, r.Scan.Duration.Round(time.Millisecond))))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(r.Groups) == 0 {
		sb.WriteString(winnerStyle.Render("No conflicts found."))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	lastDir := ""
	for _, g := range r.Groups {
		if g.RelDir != lastDir {
			lastDir = g.RelDir
			sb.WriteString(dirStyle.Render(g.RelDir + "/"))
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("  %s\n", g.Identifier))
		for i, s := range g.Sources {
			marker := "   "
			line := fmt.Sprintf("%s%s  %s:%d", marker, s.Mod, s.RelPath, s.Line)
			if i == len(g.Sources)-1 {
				sb.WriteString(winnerStyle.Render(line + "  (wins)"))
			} else {
				sb.WriteString(dimStyle.Render(line))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(warnStyle.Render(fmt.Sprintf("%d conflicting identifiers", len(r.Groups))))
	sb.WriteString("\n")

	if len(r.Overrides) > 0 {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render(fmt.Sprintf("Engine override warnings (%d)", len(r.Overrides))))
		sb.WriteString("\n")
		for _, o := range r.Overrides {
			sb.WriteString(fmt.Sprintf("  %s :: %s\n", o.RelDir, o.Identifier))
			for _, s := range o.Sources {
				sb.WriteString(dimStyle.Render(fmt.Sprintf("    %s  %s:%d", s.Mod, s.RelPath, s.Line)))
				sb.WriteString("\n")
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderErrorsHuman(w io.Writer, r *ErrorReport) error {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("Error log analysis: %s", r.LogFile)))
	sb.WriteString("\n\n")

	if len(r.Errors) == 0 {
		sb.WriteString(winnerStyle.Render("No errors found."))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	types := make([]errlog.ErrorType, 0, len(r.Counts))
	for t := range r.Counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if r.Counts[types[i]] != r.Counts[types[j]] {
			return r.Counts[types[i]] > r.Counts[types[j]]
		}
		return types[i] < types[j]
	})
	for _, t := range types {
		sb.WriteString(fmt.Sprintf("  %4d  %s\n", r.Counts[t], t))
	}
	sb.WriteString("\n")

	for _, e := range r.Errors {
		if len(e.Mods) == 0 {
			continue
		}
		firstLine := e.Message
		if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
			firstLine = firstLine[:i]
		}
		sb.WriteString(dirStyle.Render(string(e.Type)))
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  [%s] line %d", e.EngineSource, e.LogLine)))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    %s\n", firstLine))
		sb.WriteString(warnStyle.Render(fmt.Sprintf("    caused by: %s", strings.Join(e.Mods, ", "))))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%d errors, %d attributed to mods", len(r.Errors), r.Attributed)))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
