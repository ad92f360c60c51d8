package dirchecksums

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Report is the machine-readable form of a verification
type Report struct {
	Result    string      `json:"result" yaml:"result"`
	Algorithm string      `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Added     []string    `json:"added" yaml:"added"`
	Removed   []string    `json:"removed" yaml:"removed"`
	Ignored   []string    `json:"ignored" yaml:"ignored"`
	Matches   []string    `json:"matches" yaml:"matches"`
	Differs   []DiffEntry `json:"differs" yaml:"differs"`
	Stats     *ScanStats  `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// DiffEntry is a file whose hash changed
type DiffEntry struct {
	Path string `json:"path" yaml:"path"`
	Was  string `json:"was" yaml:"was"`
	Now  string `json:"now" yaml:"now"`
}

// NewReport flattens an outcome
func NewReport(outcome *CompareOutcome, algorithm Algorithm, stats *ScanStats) *Report {
	r := &Report{
		Result:    Classify(outcome).String(),
		Algorithm: algorithm.String(),
		Added:     []string{},
		Removed:   []string{},
		Ignored:   []string{},
		Matches:   []string{},
		Differs:   []DiffEntry{},
		Stats:     stats,
	}
	if outcome == nil {
		return r
	}

	for _, c := range outcome.Changes {
		switch c.Kind {
		case FileAdded:
			r.Added = append(r.Added, c.Path)
		case FileRemoved:
			r.Removed = append(r.Removed, c.Path)
		case FileIgnored:
			r.Ignored = append(r.Ignored, c.Path)
		}
	}
	for _, f := range outcome.Files {
		if f.Kind == FileDiffers {
			r.Differs = append(r.Differs, DiffEntry{Path: f.Path, Was: f.Was, Now: f.Now})
		} else {
			r.Matches = append(r.Matches, f.Path)
		}
	}
	return r
}

// ReportWriter renders verification results
type ReportWriter struct {
	Out    io.Writer
	Format string
	Color  bool

	added   lipgloss.Style
	removed lipgloss.Style
	ignored lipgloss.Style
	ok      lipgloss.Style
	bad     lipgloss.Style
}

// NewReportWriter creates a writer for format (human, json or yaml)
func NewReportWriter(out io.Writer, format string, color bool) *ReportWriter {
	rw := &ReportWriter{Out: out, Format: format, Color: color}
	if color {
		rw.added = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		rw.removed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		rw.ignored = lipgloss.NewStyle().Faint(true)
		rw.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		rw.bad = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	}
	return rw
}

// ColorEnabled reports whether a colour setting applies to w. "auto" enables
// colour only for terminals.
func ColorEnabled(setting string, w io.Writer) bool {
	switch setting {
	case "always", "true", "yes", "on":
		return true
	case "never", "false", "no", "off":
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

func (rw *ReportWriter) paint(style lipgloss.Style, s string) string {
	if !rw.Color {
		return s
	}
	return style.Render(s)
}

// WriteOutcome renders a completed comparison
func (rw *ReportWriter) WriteOutcome(outcome *CompareOutcome, algorithm Algorithm, stats *ScanStats) error {
	switch rw.Format {
	case "json":
		enc := json.NewEncoder(rw.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(outcome, algorithm, stats))
	case "yaml":
		enc := yaml.NewEncoder(rw.Out)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(NewReport(outcome, algorithm, stats))
	default:
		return rw.writeHuman(outcome)
	}
}

func (rw *ReportWriter) writeHuman(outcome *CompareOutcome) error {
	if outcome == nil {
		outcome = &CompareOutcome{}
	}
	for _, c := range outcome.Changes {
		var line string
		switch c.Kind {
		case FileAdded:
			line = rw.paint(rw.added, fmt.Sprintf("File added: \"%s\"", c.Path))
		case FileRemoved:
			line = rw.paint(rw.removed, fmt.Sprintf("File removed: \"%s\"", c.Path))
		case FileIgnored:
			line = rw.paint(rw.ignored, fmt.Sprintf("File ignored, skipping: \"%s\"", c.Path))
		}
		if _, err := fmt.Fprintln(rw.Out, line); err != nil {
			return err
		}
	}

	switch Classify(outcome) {
	case NothingToVerify:
		_, err := fmt.Fprintln(rw.Out, "No files left to verify")
		return err
	case NoFilesToVerify:
		_, err := fmt.Fprintln(rw.Out, "No files to verify")
		return err
	}

	if len(outcome.Changes) > 0 {
		if _, err := fmt.Fprintln(rw.Out); err != nil {
			return err
		}
	}

	for _, f := range outcome.Files {
		var err error
		if f.Kind == FileMatches {
			_, err = fmt.Fprintln(rw.Out, rw.paint(rw.ok, fmt.Sprintf("File \"%s\" matches", f.Path)))
		} else {
			_, err = fmt.Fprintf(rw.Out, "%s\n  Was: %s\n  Is : %s\n",
				rw.paint(rw.bad, fmt.Sprintf("File \"%s\" doesn't match", f.Path)), f.Was, f.Now)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteCreated reports a newly written hash table. The human format is silent.
func (rw *ReportWriter) WriteCreated(path string, algorithm Algorithm, stats *ScanStats) error {
	switch rw.Format {
	case "json", "yaml":
		created := struct {
			Result    string     `json:"result" yaml:"result"`
			File      string     `json:"file" yaml:"file"`
			Algorithm string     `json:"algorithm" yaml:"algorithm"`
			Stats     *ScanStats `json:"stats,omitempty" yaml:"stats,omitempty"`
		}{"created", path, algorithm.String(), stats}
		if rw.Format == "json" {
			enc := json.NewEncoder(rw.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(created)
		}
		enc := yaml.NewEncoder(rw.Out)
		defer enc.Close()
		return enc.Encode(created)
	default:
		return nil
	}
}

// WriteError prints the human description of a fatal error
func WriteError(w io.Writer, err error) {
	fmt.Fprintln(w, err.Error())
}
