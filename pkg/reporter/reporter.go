// Package reporter renders duplicate-detection results. It consumes
// the pipeline's output structures (duplicate groups, decisions, scan
// statistics) and produces table, CSV, JSON, YAML or XML reports.
package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/types"
)

// Format selects a report rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXML   Format = "xml"
)

// ParseFormat converts a user-supplied format name, failing with
// INVALID_INPUT on unknown names.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown report format %q", name)
	}
}

// Report is the renderable view of one detection pass.
type Report struct {
	Stats  ScanStats `json:"stats" yaml:"stats"`
	Groups []Group   `json:"groups" yaml:"groups"`
}

// Group is one duplicate set with its resolution.
type Group struct {
	Hash   string   `json:"hash" yaml:"hash"`
	Size   int64    `json:"size" yaml:"size"`
	Keep   string   `json:"keep" yaml:"keep"`
	Delete []string `json:"delete" yaml:"delete"`
}

// Build assembles a Report from the pipeline's output structures, in
// deterministic hash order.
func Build(groups map[string]types.DuplicateGroup, decisions []types.Decision, totalScanned int) Report {
	report := Report{Stats: CalculateStats(groups, decisions, totalScanned)}

	sorted := make([]types.Decision, len(decisions))
	copy(sorted, decisions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hash < sorted[j].Hash })

	for _, decision := range sorted {
		group, ok := groups[decision.Hash]
		if !ok || len(group.Files) == 0 {
			continue
		}
		report.Groups = append(report.Groups, Group{
			Hash:   decision.Hash,
			Size:   group.Files[0].Size,
			Keep:   decision.Keep,
			Delete: decision.Delete,
		})
	}

	return report
}

// Reporter renders reports. Color applies to the table format only and
// is dropped automatically on terminals without color support.
type Reporter struct {
	color bool
}

// New creates a Reporter. color enables styled table output.
func New(color bool) *Reporter {
	if color && termenv.EnvColorProfile() == termenv.Ascii {
		color = false
	}
	return &Reporter{color: color}
}

// Render produces the report in the requested format.
func (r *Reporter) Render(format Format, report Report) (string, error) {
	switch format {
	case FormatTable:
		return r.renderTable(report), nil
	case FormatCSV:
		return renderCSV(report)
	case FormatJSON:
		return renderJSON(report)
	case FormatYAML:
		return renderYAML(report)
	case FormatXML:
		return renderXML(report)
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown report format %q", format)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "117"})
	keepStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "78"})
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "244", Dark: "242"})
)

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Reporter) renderTable(report Report) string {
	var out strings.Builder

	out.WriteString(strings.Repeat("=", 72) + "\n")
	out.WriteString(r.style(titleStyle, "Duplicate Scan Report") + "\n")
	out.WriteString(strings.Repeat("=", 72) + "\n")
	fmt.Fprintf(&out, "Total Files Scanned:    %d\n", report.Stats.TotalFilesScanned)
	fmt.Fprintf(&out, "Duplicate Groups Found: %d\n", report.Stats.DuplicateGroupsFound)
	fmt.Fprintf(&out, "Total Duplicate Files:  %d\n", report.Stats.TotalDuplicateFiles)
	fmt.Fprintf(&out, "Files to Delete:        %d\n", report.Stats.FilesToDelete)
	fmt.Fprintf(&out, "Space to Recover:       %s\n", report.Stats.SpaceHuman())

	for _, group := range report.Groups {
		out.WriteString("\n")
		header := fmt.Sprintf("Group %s  (%d bytes each)", shortHash(group.Hash), group.Size)
		out.WriteString(r.style(headerStyle, header) + "\n")
		out.WriteString("  " + r.style(keepStyle, "keep   ") + group.Keep + "\n")
		for _, path := range group.Delete {
			out.WriteString("  " + r.style(deleteStyle, "delete ") + path + "\n")
		}
	}

	if len(report.Groups) == 0 {
		out.WriteString("\n" + r.style(mutedStyle, "No duplicates found") + "\n")
	}

	return out.String()
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func renderCSV(report Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"hash", "action", "path", "size"}); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to write CSV header")
	}
	for _, group := range report.Groups {
		size := strconv.FormatInt(group.Size, 10)
		if err := w.Write([]string{group.Hash, "keep", group.Keep, size}); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to write CSV row")
		}
		for _, path := range group.Delete {
			if err := w.Write([]string{group.Hash, "delete", path, size}); err != nil {
				return "", errors.Wrap(err, errors.ErrInternal, "failed to write CSV row")
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to flush CSV")
	}
	return buf.String(), nil
}

func renderJSON(report Report) (string, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal JSON report")
	}
	return string(out) + "\n", nil
}

func renderYAML(report Report) (string, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal YAML report")
	}
	return string(out), nil
}

func renderXML(report Report) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")

	stats := root.CreateElement("stats")
	stats.CreateAttr("totalFilesScanned", strconv.Itoa(report.Stats.TotalFilesScanned))
	stats.CreateAttr("duplicateGroupsFound", strconv.Itoa(report.Stats.DuplicateGroupsFound))
	stats.CreateAttr("totalDuplicateFiles", strconv.Itoa(report.Stats.TotalDuplicateFiles))
	stats.CreateAttr("filesToDelete", strconv.Itoa(report.Stats.FilesToDelete))
	stats.CreateAttr("spaceToRecover", strconv.FormatInt(report.Stats.SpaceToRecover, 10))

	groups := root.CreateElement("groups")
	for _, group := range report.Groups {
		el := groups.CreateElement("group")
		el.CreateAttr("hash", group.Hash)
		el.CreateAttr("size", strconv.FormatInt(group.Size, 10))
		el.CreateElement("keep").SetText(group.Keep)
		for _, path := range group.Delete {
			el.CreateElement("delete").SetText(path)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to serialize XML report")
	}
	return out, nil
}
