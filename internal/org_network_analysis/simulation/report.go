package simulation

import (
	"fmt"
	"strings"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

// Report renders the delta between two analyses as the markdown-ish text the
// UI shows next to the simulated graph.
func Report(personID, targetUnit string, before, after domain.Summary, found bool) string {
	var b strings.Builder
	b.WriteString("Simulation Impact Report:\n")
	fmt.Fprintf(&b, "- Employee (ID: %s) moved to unit '%s'.\n\n", personID, targetUnit)
	fmt.Fprintf(&b, "**Team Effectiveness Score (New): %.2f**\n", after.AvgEffectiveness)
	fmt.Fprintf(&b, "**Team Effectiveness Score (Old): %.2f**\n", before.AvgEffectiveness)
	fmt.Fprintf(&b, "**Impact: %+.2f Points**\n\n", after.AvgEffectiveness-before.AvgEffectiveness)
	fmt.Fprintf(&b, "- Organizational Silos: %d (Before: %d)", after.NumSilos, before.NumSilos)
	if !found {
		fmt.Fprintf(&b, "\n- Note: no employee with ID %s was found; the organisation is unchanged.", personID)
	}
	return b.String()
}
