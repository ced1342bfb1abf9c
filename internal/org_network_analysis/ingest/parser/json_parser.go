package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

type record map[string]any

// DecodePersons decodes a person list. raw may be a JSON array or a JSON
// string holding one, which is how the editor in the UI submits it.
// A nil result means the list was absent (empty input or null); an explicit
// empty array yields a non-nil empty slice.
func DecodePersons(raw []byte) ([]domain.Person, []domain.Warning, error) {
	items, err := decodeList(raw, "persons")
	if err != nil || items == nil {
		return nil, nil, err
	}

	out := make([]domain.Person, 0, len(items))
	var warns []domain.Warning
	for i, rec := range items {
		id, ok := stringValue(rec["id"])
		if !ok {
			warns = append(warns, domain.Warning{
				Kind:    domain.WarnMissingID,
				Subject: fmt.Sprintf("persons[%d]", i),
				Message: "person record has no usable id and was skipped",
			})
			continue
		}

		p := domain.Person{
			ID:   id,
			Name: firstString(rec, "nama", "name"),
			Unit: firstString(rec, "unit"),
			Role: firstString(rec, "jabatan", "role"),
		}
		var w []domain.Warning
		p.PotentialScore, w = scoreField(rec, id, "potential", "skor_potensi", "potential_score")
		warns = append(warns, w...)
		p.PerformanceScore, w = scoreField(rec, id, "performance", "skor_kinerja", "performance_score")
		warns = append(warns, w...)

		out = append(out, p)
	}
	return out, warns, nil
}

// DecodeCollaborations decodes a collaboration list with the same rules as
// DecodePersons.
func DecodeCollaborations(raw []byte) ([]domain.Collaboration, []domain.Warning, error) {
	items, err := decodeList(raw, "collaborations")
	if err != nil || items == nil {
		return nil, nil, err
	}

	out := make([]domain.Collaboration, 0, len(items))
	var warns []domain.Warning
	for i, rec := range items {
		src, okSrc := firstValue(rec, "source", "source_id")
		dst, okDst := firstValue(rec, "target", "target_id")
		if !okSrc || !okDst {
			warns = append(warns, domain.Warning{
				Kind:    domain.WarnMissingEndpoint,
				Subject: fmt.Sprintf("collaborations[%d]", i),
				Message: "collaboration record lacks a source or target and was skipped",
			})
			continue
		}
		out = append(out, domain.Collaboration{
			SourceID:     src,
			TargetID:     dst,
			ProjectLabel: firstString(rec, "project", "project_label"),
		})
	}
	return out, warns, nil
}

func decodeList(raw []byte, what string) ([]record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, domain.InvalidInputf("%s: %v", what, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, domain.InvalidInputf("%s: empty JSON text", what)
		}
		raw = []byte(text)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, domain.InvalidInputf("%s: %v", what, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, domain.InvalidInputf("%s: unexpected data after the list", what)
	}

	list, ok := v.([]any)
	if !ok {
		return nil, domain.InvalidInputf("%s must be a list, got %s", what, kindOf(v))
	}

	out := make([]record, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, domain.InvalidInputf("%s[%d] must be an object, got %s", what, i, kindOf(item))
		}
		out = append(out, record(m))
	}
	return out, nil
}

func scoreField(rec record, id, label string, keys ...string) (float64, []domain.Warning) {
	var v any
	found := false
	for _, k := range keys {
		if x, ok := rec[k]; ok && x != nil {
			v, found = x, true
			break
		}
	}
	if !found {
		return domain.DefaultScore, []domain.Warning{{
			Kind:    domain.WarnMissingScore,
			Subject: id,
			Message: fmt.Sprintf("%s score missing, defaulted to %.0f", label, domain.DefaultScore),
		}}
	}

	f, ok := floatValue(v)
	if !ok {
		return domain.DefaultScore, []domain.Warning{{
			Kind:    domain.WarnInvalidScore,
			Subject: id,
			Message: fmt.Sprintf("%s score %v is not a number, defaulted to %.0f", label, v, domain.DefaultScore),
		}}
	}
	if f < 0 || f > 100 {
		return f, []domain.Warning{{
			Kind:    domain.WarnScoreOutOfRange,
			Subject: id,
			Message: fmt.Sprintf("%s score %g is outside 0-100", label, f),
		}}
	}
	return f, nil
}

func floatValue(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = x
	case int:
		f = float64(x)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringValue(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return "", false
		}
		return x, true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	default:
		return "", false
	}
}

func firstValue(rec record, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := stringValue(rec[k]); ok {
			return s, true
		}
	}
	return "", false
}

func firstString(rec record, keys ...string) string {
	s, _ := firstValue(rec, keys...)
	return s
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case json.Number, float64, int:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
