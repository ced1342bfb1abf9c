package export

import (
	"fmt"
	"strings"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

func ToDOT(r *domain.AnalysisResult, title string) string {
	var b strings.Builder
	b.WriteString("graph G {\n  layout=neato;\n  overlap=false;\n  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\"];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label="%s"; fontname="Helvetica";`, esc(title)))
		b.WriteString("\n")
	}

	for _, n := range r.Nodes {
		b.WriteString(fmt.Sprintf(`  "%s" [label="%s", fillcolor="%s", tooltip="%s"];`+"\n",
			esc(n.ID), esc(n.Label), TierColors[n.Tier], n.Tier))
	}

	for _, e := range r.Edges {
		if e.Label == "" {
			b.WriteString(fmt.Sprintf(`  "%s" -- "%s";`+"\n", esc(e.Source), esc(e.Target)))
			continue
		}
		b.WriteString(fmt.Sprintf(`  "%s" -- "%s" [label="%s"];`+"\n", esc(e.Source), esc(e.Target), esc(e.Label)))
	}

	b.WriteString("}\n")
	return b.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func esc(s string) string { return dotEscaper.Replace(s) }
