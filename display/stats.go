package display

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/aton/codec"
)

// RenderStats renders a compression report in the calm key-value style the
// rest of the CLI uses.
func RenderStats(stats *codec.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s ~%d tokens\n", pterm.LightCyan("Original:"), stats.OriginalTokens)
	fmt.Fprintf(&b, "%s  ~%d tokens\n", pterm.LightCyan("Encoded:"), stats.EncodedTokens)
	fmt.Fprintf(&b, "%s    %.2fx\n", pterm.LightCyan("Ratio:"), stats.Ratio)

	savings := fmt.Sprintf("%.1f%%", stats.SavingsPercent)
	if stats.SavingsPercent > 0 {
		savings = pterm.Green(savings)
	} else if stats.SavingsPercent < 0 {
		savings = pterm.Red(savings)
	}
	fmt.Fprintf(&b, "%s  %s\n", pterm.LightCyan("Savings:"), savings)

	fmt.Fprintf(&b, "%s     %s\n", pterm.LightCyan("Mode:"), stats.Mode)
	fmt.Fprintf(&b, "%s     %d entries", pterm.LightCyan("Dict:"), stats.DictEntries)

	return b.String()
}
