// Package render prints issue reports and facility inventories for terminals.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"projectdash/internal/core"
	"projectdash/pkg/domain"
)

// MissingFacilitiesHint is shown when a project has no TestFacilities table.
const MissingFacilitiesHint = "TestFacilities data is not available, upload it with `projectdash tables upload <project> TestFacilities <file>`"

// Icons prefixed to report lines.
const (
	IconWarning = "⚠️"
	IconError   = "❗"
	IconSuccess = "✅"
)

type sectionText struct {
	title   string
	success string
}

var sectionTexts = map[domain.Section]sectionText{
	domain.SectionTestStrategy: {"Test-Strategy Checks", "All test cases are scheduled without any resource clashes"},
	domain.SectionRequirements: {"Requirements Checks", "No requirement-level issues detected"},
	domain.SectionTestResults:  {"Test-Results Checks", "No test-result issues detected"},
}

// Title returns the heading printed for a section.
func Title(s domain.Section) string { return sectionTexts[s].title }

// SuccessMessage returns the line printed when a section has no issues.
func SuccessMessage(s domain.Section) string { return sectionTexts[s].success }

// Printer writes reports to w, styling them when color is enabled.
type Printer struct {
	w       io.Writer
	color   bool
	title   lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter builds a printer. Styles are resolved against w's color profile.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		color:   color,
		title:   r.NewStyle().Bold(true).Underline(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		muted:   r.NewStyle().Faint(true),
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Report prints every section in order, separated by a blank line.
func (p *Printer) Report(report domain.Report) error {
	for i, section := range domain.Sections() {
		if i > 0 {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		if err := p.section(section, report.Issues(section)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) section(section domain.Section, issues []domain.Issue) error {
	if _, err := fmt.Fprintln(p.w, p.style(p.title, Title(section))); err != nil {
		return err
	}
	if len(issues) == 0 {
		_, err := fmt.Fprintf(p.w, "%s %s\n", IconSuccess, p.style(p.success, SuccessMessage(section)))
		return err
	}
	for _, iss := range issues {
		icon, st := IconWarning, p.warning
		if iss.Kind == domain.KindError {
			icon, st = IconError, p.failure
		}
		if _, err := fmt.Fprintf(p.w, "%s %s\n", icon, p.style(st, iss.Message)); err != nil {
			return err
		}
	}
	return nil
}

// Facilities prints each facility followed by its equipment counts.
func (p *Printer) Facilities(inv []core.FacilityEquipment) error {
	if len(inv) == 0 {
		_, err := fmt.Fprintln(p.w, p.style(p.muted, "No test facilities recorded"))
		return err
	}
	for _, f := range inv {
		if _, err := fmt.Fprintln(p.w, p.style(p.title, f.DisplayName)); err != nil {
			return err
		}
		for _, eq := range f.Equipment {
			if _, err := fmt.Fprintf(p.w, "  - %s (%d)\n", eq.Equipment, eq.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

// MissingFacilities tells the user the facilities table has not been uploaded.
func (p *Printer) MissingFacilities() error {
	_, err := fmt.Fprintln(p.w, p.style(p.muted, MissingFacilitiesHint))
	return err
}

// Projects prints one project per line with its table folder.
func (p *Printer) Projects(projects []domain.Project) error {
	for _, pr := range projects {
		if _, err := fmt.Fprintf(p.w, "%s\t%s\n", pr.Name, p.style(p.muted, pr.Location().Prefix)); err != nil {
			return err
		}
	}
	return nil
}
