package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/docnav/internal/config"
	"github.com/itsmostafa/docnav/internal/manifest"
	"github.com/itsmostafa/docnav/internal/search"
	"github.com/itsmostafa/docnav/internal/site"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// rebuildBannerStyle for watch mode rebuild banners
	rebuildBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("33")).
				Padding(0, 2)
)

// FormatHeader renders the build header with configuration info
func FormatHeader(w io.Writer, cfg *config.Config) {
	var extra []string
	if cfg.Images.Compress {
		extra = append(extra, fmt.Sprintf("images q%d", cfg.Images.JPEGQuality))
	}
	if cfg.Search.Enabled {
		extra = append(extra, "search")
	}
	var extraLine string
	if len(extra) > 0 {
		extraLine = fmt.Sprintf("\n%s %s", dimStyle.Render("Extras:"), strings.Join(extra, ", "))
	}

	content := fmt.Sprintf("%s %s\n%s %s%s",
		dimStyle.Render("Docs:"), titleStyle.Render(cfg.DocsDir),
		dimStyle.Render("Out:"), cfg.OutDir,
		extraLine,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatSummary renders the build summary box
func FormatSummary(w io.Writer, result *site.Result) {
	status := successStyle.Render("OK")
	if len(result.Failures) > 0 {
		status = errorStyle.Render(fmt.Sprintf("%d FAILED", len(result.Failures)))
	}

	line1 := fmt.Sprintf("%s %.2fs  %s %d  %s %d  %s %d",
		dimStyle.Render("Duration:"), result.Duration.Seconds(),
		dimStyle.Render("Docs:"), result.Documents,
		dimStyle.Render("Nodes:"), result.Nodes,
		dimStyle.Render("Assets:"), result.Assets,
	)
	line2 := fmt.Sprintf("%s %d  %s %d  %s",
		dimStyle.Render("Drafts:"), result.Drafts,
		dimStyle.Render("Compressed:"), result.Compressed,
		status,
	)

	content := titleStyle.Render("Build Complete") + "\n" + line1 + "\n" + line2
	if result.ManifestPath != "" {
		content += "\n" + dimStyle.Render("Manifest: ") + result.ManifestPath
	}
	fmt.Fprintln(w, boxStyle.Render(content))

	FormatProblems(w, result)
}

// FormatProblems lists failed documents and orphaned directories
func FormatProblems(w io.Writer, result *site.Result) {
	for _, f := range result.Failures {
		fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("✗"), f.Path, dimStyle.Render(f.Error))
	}
	for _, dir := range result.Orphans {
		fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("!"), dir, dimStyle.Render("not linked from navigation"))
	}
}

// FormatTree renders the navigation tree with one indented line per node
func FormatTree(w io.Writer, m *manifest.Manifest) {
	manifest.Walk(m.Files, func(n manifest.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		marker := "•"
		if len(n.Children) > 0 {
			marker = "▸"
		}
		fmt.Fprintf(w, "%s%s %s %s\n", indent, marker, titleStyle.Render(n.Title), dimStyle.Render(n.Path))
	})
}

// FormatRebuildBanner renders the watch mode banner before a rebuild
func FormatRebuildBanner(w io.Writer, iteration, changes int) {
	banner := fmt.Sprintf(" REBUILD %d ", iteration)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rebuildBannerStyle.Render(banner), dimStyle.Render(fmt.Sprintf("%d changed", changes)))
}

// FormatDiff renders a manifest diff with colored +/- lines
func FormatDiff(w io.Writer, diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, successStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, errorStyle.Render(line))
		default:
			fmt.Fprintln(w, dimStyle.Render(line))
		}
	}
}

// FormatHits renders search results
func FormatHits(w io.Writer, hits []search.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No matches"))
		return
	}
	for i, h := range hits {
		fmt.Fprintf(w, "%2d. %s %s %s\n", i+1,
			titleStyle.Render(h.Title),
			h.Path,
			dimStyle.Render(fmt.Sprintf("(%.3f)", h.Score)),
		)
	}
}
