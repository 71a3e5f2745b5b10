package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(Money{Cents: 4550})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "45.5" {
		t.Fatalf("marshal = %s, want 45.5", data)
	}

	// Unlike ParseAmount, record decoding tolerates zero and negatives;
	// derived values like a budget's remaining can be negative.
	for _, tc := range []struct {
		in  string
		out int64
	}{
		{"45.5", 4550},
		{"0", 0},
		{"-25", -2500},
		{"1000", 100000},
	} {
		var m Money
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
			t.Fatalf("unmarshal %q: %v", tc.in, err)
		}
		if m.Cents != tc.out {
			t.Fatalf("unmarshal %q = %d, want %d", tc.in, m.Cents, tc.out)
		}
	}
}
