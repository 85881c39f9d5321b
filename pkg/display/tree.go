// Package display renders environment tables and profile layer trees.
package display

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/aidevhq/cli/pkg/util"
)

func getTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// runeWidth returns the terminal column width of a single rune.
// Only emoji with East Asian Width "W" (Wide) are counted as 2 columns.
// Ambiguous-width characters (EAW=A/N) that need VS16 for emoji presentation
// are avoided in our display strings; we use only EAW=W emoji for indicators.
func runeWidth(r rune) int {
	switch {
	case r == '️' || r == ' ' || r == '​' || r == '‍':
		return 0 // variation selectors, hair space, zero-width space, ZWJ
	case r >= 0x1F000:
		return 2 // Supplementary emoji (nearly all EAW=W)
	case r >= 0x2600 && r <= 0x27BF:
		return 2 // Misc Symbols & Dingbats (⚡ etc.)
	default:
		return 1
	}
}

// displayWidth returns the visual terminal column width of s.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

// padRight pads s with spaces to fill exactly width display columns.
func padRight(s string, width int) string {
	sw := displayWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncateToWidth truncates s to fit within maxWidth display columns.
func truncateToWidth(s string, maxWidth int) string {
	if displayWidth(s) <= maxWidth {
		return s
	}
	var result []byte
	w := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runeWidth(r)
		if w+rw > maxWidth-1 {
			break
		}
		result = append(result, s[i:i+size]...)
		w += rw
		i += size
	}
	return string(result) + "…"
}

// wrapToWidth splits s into lines that each fit within maxWidth display columns.
func wrapToWidth(s string, maxWidth int) []string {
	if maxWidth <= 0 || displayWidth(s) <= maxWidth {
		return []string{s}
	}
	var lines []string
	var line []byte
	w := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runeWidth(r)
		if rw > 0 && w+rw > maxWidth {
			lines = append(lines, string(line))
			line = nil
			w = 0
		}
		line = append(line, s[i:i+size]...)
		w += rw
		i += size
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

func censorValue(value string, maxLength int) string {
	if len(value) <= 6 {
		return strings.Repeat("*", len(value))
	}
	censored := value[:3] + strings.Repeat("*", len(value)-6) + value[len(value)-3:]
	if len(censored) > maxLength && maxLength > 6 {
		return censored[:maxLength-6]
	}
	return censored
}

// EnvRow is one variable in the environment table.
type EnvRow struct {
	Key    string
	Value  string
	Source string
	// Secret rows are censored unless show is requested.
	Secret bool
	// Reference marks values backed by a secret store.
	Reference bool
}

// renderEnvRow renders a single variable row. Secret values are censored
// unless show is set; plain values always print as-is.
func renderEnvRow(prefix string, row EnvRow, show bool, keyWidth, valueWidth int) {
	keyDisplay := row.Key
	if row.Secret {
		keyDisplay += " 🔒"
	}

	icon := ""
	if row.Reference {
		icon += "🌐 "
	}
	if util.ContainsVarRef(row.Value) {
		icon += "🔗 "
	}

	var valueDisplay string
	switch {
	case row.Secret && !show:
		censorLen := valueWidth - displayWidth(icon) - 2
		if censorLen < 6 {
			censorLen = 6
		}
		valueDisplay = censorValue(row.Value, censorLen)
	default:
		valueDisplay = row.Value
	}
	valueDisplay = icon + valueDisplay

	keyDisplay = truncateToWidth(keyDisplay, keyWidth)

	valueLines := wrapToWidth(valueDisplay, valueWidth)
	for i, vline := range valueLines {
		if i == 0 {
			fmt.Fprintf(os.Stdout, "  %s   │ %s│ %s│\n",
				prefix, padRight(keyDisplay, keyWidth), padRight(vline, valueWidth))
		} else {
			fmt.Fprintf(os.Stdout, "  %s   │ %s│ %s│\n",
				prefix, strings.Repeat(" ", keyWidth), padRight(vline, valueWidth))
		}
	}
}

// RenderEnvTree renders the layered environment grouped by source. Sources
// print in the order they first appear in rows, which callers arrange from
// highest to lowest precedence.
func RenderEnvTree(profile string, rows []EnvRow, show bool) {
	if len(rows) == 0 {
		fmt.Println("No variables to display.")
		return
	}

	bold, cyan, _, magenta, reset := util.AnsiCodes()

	fmt.Printf("  %s Environment for profile: %s%s%s%s\n",
		"🌱", bold, cyan, profile, reset)

	var order []string
	bySource := map[string][]EnvRow{}
	for _, row := range rows {
		if _, seen := bySource[row.Source]; !seen {
			order = append(order, row.Source)
		}
		bySource[row.Source] = append(bySource[row.Source], row)
	}

	termWidth := getTerminalWidth()

	for si, source := range order {
		sourceRows := bySource[source]
		sort.Slice(sourceRows, func(i, j int) bool { return sourceRows[i].Key < sourceRows[j].Key })

		isLast := si == len(order)-1
		connector, prefix := "├", "│"
		if isLast {
			connector, prefix = "└", " "
		}

		label := source
		if label == "" {
			label = "unknown"
		}
		fmt.Printf("  %s── %s %s - %s%s%d variables%s\n",
			connector, "📁", label, bold, magenta, len(sourceRows), reset)

		keyWidth, valueWidth := columnWidths(sourceRows, termWidth)

		fmt.Fprintf(os.Stdout, "  %s   ┌─%s┬─%s┐\n",
			prefix, strings.Repeat("─", keyWidth), strings.Repeat("─", valueWidth))
		fmt.Fprintf(os.Stdout, "  %s   │ %s%s│ %s%s│\n",
			prefix, bold, padRight("KEY", keyWidth)+reset, bold, padRight("VALUE", valueWidth)+reset)
		fmt.Fprintf(os.Stdout, "  %s   ├─%s┼─%s┤\n",
			prefix, strings.Repeat("─", keyWidth), strings.Repeat("─", valueWidth))

		for _, row := range sourceRows {
			renderEnvRow(prefix, row, show, keyWidth, valueWidth)
		}

		fmt.Fprintf(os.Stdout, "  %s   └─%s┴─%s┘\n",
			prefix, strings.Repeat("─", keyWidth), strings.Repeat("─", valueWidth))
	}
}

func columnWidths(rows []EnvRow, termWidth int) (int, int) {
	minKeyWidth := 15
	maxKeyLen := minKeyWidth
	for _, row := range rows {
		kl := displayWidth(row.Key) + 4
		if kl > maxKeyLen {
			maxKeyLen = kl
		}
	}
	keyWidth := maxKeyLen + 6
	if keyWidth > 40 {
		keyWidth = 40
	}
	if keyWidth < minKeyWidth {
		keyWidth = minKeyWidth
	}
	// Full row: "  X   │ " + key + "│ " + value + "│" = prefix(6) + 2 + key + 2 + value + 1
	valueWidth := termWidth - keyWidth - 12
	if valueWidth < 20 {
		valueWidth = 20
	}
	return keyWidth, valueWidth
}

// Layer is one profile fragment in the resolved chain.
type Layer struct {
	Path    string
	Servers []string
	// Custom marks fragments from the custom directory.
	Custom bool
}

// RenderLayerTree renders the fragment chain for a profile, lowest
// precedence first, with the servers each fragment contributes.
func RenderLayerTree(profile string, layers []Layer) {
	bold, cyan, green, _, reset := util.AnsiCodes()

	fmt.Printf("  %s Profile: %s%s%s%s\n", "🧬", bold, cyan, profile, reset)
	if len(layers) == 0 {
		fmt.Println("  (no fragments resolved)")
		return
	}

	for i, layer := range layers {
		connector := "├"
		if i == len(layers)-1 {
			connector = "└"
		}
		marker := "📄"
		if layer.Custom {
			marker = "✏️ "
		}

		servers := "no servers"
		if len(layer.Servers) > 0 {
			servers = strings.Join(layer.Servers, ", ")
		}
		fmt.Printf("  %s── %s %s %s(%s)%s\n",
			connector, marker, layer.Path, green, servers, reset)
	}
}
