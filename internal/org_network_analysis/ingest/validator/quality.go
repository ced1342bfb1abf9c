package validator

import (
	"fmt"
	"strings"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

// Inspect reports the data-quality conditions the graph builder tolerates:
// duplicate person ids, collaborations pointing at unknown people,
// self-collaborations and repeated collaboration pairs. It never fails.
func Inspect(persons []domain.Person, collabs []domain.Collaboration) []domain.Warning {
	var out []domain.Warning

	known := make(map[string]int, len(persons))
	for _, p := range persons {
		known[p.ID]++
		if known[p.ID] == 2 {
			out = append(out, domain.Warning{
				Kind:    domain.WarnDuplicateID,
				Subject: p.ID,
				Message: fmt.Sprintf("person id %q appears more than once, last record wins", p.ID),
			})
		}
	}

	pairs := map[[2]string]bool{}
	for i, c := range collabs {
		subject := fmt.Sprintf("collaborations[%d]", i)
		if known[c.SourceID] == 0 || known[c.TargetID] == 0 {
			out = append(out, domain.Warning{
				Kind:    domain.WarnUnknownEndpoint,
				Subject: subject,
				Message: fmt.Sprintf("collaboration %s-%s references an unknown person and was dropped", c.SourceID, c.TargetID),
			})
			continue
		}
		if c.SourceID == c.TargetID {
			out = append(out, domain.Warning{
				Kind:    domain.WarnSelfCollaboration,
				Subject: subject,
				Message: fmt.Sprintf("collaboration of %q with itself was dropped", c.SourceID),
			})
			continue
		}
		key := pairKey(c.SourceID, c.TargetID)
		if pairs[key] {
			out = append(out, domain.Warning{
				Kind:    domain.WarnDuplicateCollaboration,
				Subject: subject,
				Message: fmt.Sprintf("collaboration %s-%s repeats an earlier pair, last label wins", c.SourceID, c.TargetID),
			})
			continue
		}
		pairs[key] = true
	}

	return out
}

// CheckStrict turns duplicate-id warnings into an InvalidInput error.
func CheckStrict(warns []domain.Warning) error {
	var dups []string
	for _, w := range warns {
		if w.Kind == domain.WarnDuplicateID {
			dups = append(dups, w.Subject)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return domain.InvalidInputf("duplicate person ids: %s", strings.Join(dups, ", "))
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
