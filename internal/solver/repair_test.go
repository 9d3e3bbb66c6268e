package solver

import (
	"encoding/json"
	"testing"
)

func TestRepairLeavesValidJSONAlone(t *testing.T) {
	cases := []string{
		`{"formula":"v = u + a\\cdot t"}`,
		`{"note":"braces { } and colons : inside strings"}`,
		`{"a":1,"b":[true,false,null],"c":"x"}`,
		`{"unicode":"éclair","tab":"\t"}`,
	}
	for _, in := range cases {
		if got := Repair(in); got != in {
			t.Fatalf("Repair(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestRepairQuotesBareKeys(t *testing.T) {
	got := Repair(`{subject: "Maths", steps: []}`)
	want := `{"subject": "Maths", "steps": []}`
	if got != want {
		t.Fatalf("Repair = %q, want %q", got, want)
	}
}

func TestRepairDropsTrailingCommas(t *testing.T) {
	got := Repair(`{"a": [1, 2, ], "b": {"c": 3, }, }`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("Repair output still invalid: %q", got)
	}
}

func TestRepairEscapesStrayBackslashes(t *testing.T) {
	got := Repair(`{"f":"a\cdot b"}`)
	want := `{"f":"a\\cdot b"}`
	if got != want {
		t.Fatalf("Repair = %q, want %q", got, want)
	}
}

func TestRepairKeepsLiteralsBare(t *testing.T) {
	got := Repair(`{"flag": true, "missing": null}`)
	if got != `{"flag": true, "missing": null}` {
		t.Fatalf("Repair = %q", got)
	}
}

func TestRepairIncompleteUnicodeEscape(t *testing.T) {
	got := Repair(`{"f":"\u12"}`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("Repair output still invalid: %q", got)
	}
}
