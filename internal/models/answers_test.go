package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnswersJSON(t *testing.T) {
	in := Answers{
		"company_name": String("Acme CPA"),
		"mfa_enabled":  Bool(true),
		"firewall":     Bool(false),
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"company_name":"Acme CPA","firewall":false,"mfa_enabled":true}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out Answers
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded answers mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswersUnmarshalMalformed(t *testing.T) {
	var a Answers
	err := json.Unmarshal([]byte(`{"company_name":"Acme","mfa_enabled":1,"vendor":null,"list":["a"]}`), &a)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if _, ok := a["vendor"]; ok {
		t.Error("Expected null member to be dropped")
	}
	if a["mfa_enabled"].Kind != KindInvalid {
		t.Errorf("mfa_enabled kind = %s, want invalid", a["mfa_enabled"].Kind)
	}
	if string(a["mfa_enabled"].Raw) != "1" {
		t.Errorf("mfa_enabled raw = %q, want %q", a["mfa_enabled"].Raw, "1")
	}
	if a["list"].Kind != KindInvalid {
		t.Errorf("list kind = %s, want invalid", a["list"].Kind)
	}
	if a.String("company_name") != "Acme" {
		t.Errorf("company_name = %q, want Acme", a.String("company_name"))
	}
}

func TestAnswersAccessors(t *testing.T) {
	a := Answers{
		"name":  String("Duo"),
		"empty": String(""),
		"on":    Bool(true),
		"off":   Bool(false),
	}

	tests := []struct {
		field   string
		wantStr string
		wantOn  bool
		wantHas bool
	}{
		{"name", "Duo", false, true},
		{"empty", "", false, false},
		{"on", "", true, true},
		{"off", "", false, true},
		{"missing", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := a.String(tt.field); got != tt.wantStr {
				t.Errorf("String(%q) = %q, want %q", tt.field, got, tt.wantStr)
			}
			if got := a.Bool(tt.field); got != tt.wantOn {
				t.Errorf("Bool(%q) = %v, want %v", tt.field, got, tt.wantOn)
			}
			if got := a.Has(tt.field); got != tt.wantHas {
				t.Errorf("Has(%q) = %v, want %v", tt.field, got, tt.wantHas)
			}
		})
	}
}

func TestAnswersClone(t *testing.T) {
	a := Answers{"x": String("1")}
	c := a.Clone()
	c["y"] = String("2")
	if _, ok := a["y"]; ok {
		t.Error("Clone shares storage with original")
	}
	if Answers(nil).Clone() == nil {
		t.Error("Clone of nil should return an empty map")
	}
}
