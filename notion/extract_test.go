package notion

import (
	"encoding/json"
	"testing"
)

func mustProperty(t *testing.T, raw string) Property {
	t.Helper()
	var p Property
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal property: %v", err)
	}
	return p
}

func TestExtractPropertyValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"title",
			`{"type":"title","title":[{"plain_text":"T-1895"}]}`,
			"T-1895",
		},
		{
			"title_multipart",
			`{"type":"title","title":[{"plain_text":"T-"},{"plain_text":"1895"}]}`,
			"T-1895",
		},
		{
			"rich_text",
			`{"type":"rich_text","rich_text":[{"plain_text":"Cambio de banda"}]}`,
			"Cambio de banda",
		},
		{
			"select",
			`{"type":"select","select":{"name":"Mantenimiento"}}`,
			"Mantenimiento",
		},
		{
			"select_null",
			`{"type":"select","select":null}`,
			"",
		},
		{
			"status",
			`{"type":"status","status":{"name":"En curso"}}`,
			"En curso",
		},
		{
			"multi_select",
			`{"type":"multi_select","multi_select":[{"name":"Urgente"},{"name":"Nocturno"}]}`,
			"Urgente, Nocturno",
		},
		{
			"date",
			`{"type":"date","date":{"start":"2026-02-15"}}`,
			"2026-02-15",
		},
		{
			"date_null",
			`{"type":"date","date":null}`,
			"",
		},
		{
			"number",
			`{"type":"number","number":42.5}`,
			"42.5",
		},
		{
			"number_whole",
			`{"type":"number","number":42}`,
			"42",
		},
		{
			"number_null",
			`{"type":"number","number":null}`,
			"",
		},
		{
			"checkbox_true",
			`{"type":"checkbox","checkbox":true}`,
			"Sí",
		},
		{
			"checkbox_false",
			`{"type":"checkbox","checkbox":false}`,
			"No",
		},
		{
			"formula_string",
			`{"type":"formula","formula":{"type":"string","string":"calculado"}}`,
			"calculado",
		},
		{
			"formula_number",
			`{"type":"formula","formula":{"type":"number","number":7}}`,
			"7",
		},
		{
			"formula_boolean",
			`{"type":"formula","formula":{"type":"boolean","boolean":true}}`,
			"Sí",
		},
		{
			"formula_date",
			`{"type":"formula","formula":{"type":"date","date":{"start":"2026-03-01"}}}`,
			"2026-03-01",
		},
		{
			"unknown_type",
			`{"type":"rollup"}`,
			"",
		},
		{
			"empty_property",
			`{}`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProperty(t, tt.raw)
			if got := ExtractPropertyValue(p); got != tt.want {
				t.Errorf("ExtractPropertyValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
