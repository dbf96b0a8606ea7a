package model

import "testing"

func TestEncodeOptions(t *testing.T) {
	raw, err := EncodeOptions([]string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if raw != `["Red","Blue"]` {
		t.Errorf("unexpected encoding: %s", raw)
	}

	raw, err = EncodeOptions(nil)
	if err != nil {
		t.Fatalf("encode nil: %v", err)
	}
	if raw != `[]` {
		t.Errorf("expected empty array for nil options, got %s", raw)
	}
}

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"round trip", `["Red","Blue"]`, []string{"Red", "Blue"}},
		{"empty string", "", []string{}},
		{"empty array", `[]`, []string{}},
		{"json null", `null`, []string{}},
		{"malformed", `{"not":`, []string{}},
		{"wrong type", `{"a":1}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeOptions(tt.raw)
			if got == nil {
				t.Fatal("options must never decode to nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("option %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
