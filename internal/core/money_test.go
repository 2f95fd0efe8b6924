package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"25000", 2500000, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
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
		} else if err == nil {
			t.Fatalf("%q expected error, got %d", tc.in, got.Cents)
		}
	}
}

func TestParseAmountUpperBound(t *testing.T) {
	// Largest whole amount whose cents still fit in int64.
	const maxUnits = "92233720368547758"

	m, err := ParseAmount(maxUnits)
	if err != nil {
		t.Fatalf("max units rejected: %v", err)
	}
	if m.Cents != 9223372036854775800 {
		t.Fatalf("max units: got %d cents", m.Cents)
	}

	if _, err := ParseAmount("92233720368547759"); err == nil {
		t.Fatal("expected overflow rejection")
	}
	if _, err := ParseAmount("99999999999999999999"); err == nil {
		t.Fatal("expected rejection of out-of-range integer")
	}
}

func TestMoneyDecimal(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{2500000, "25000"},
		{1234, "12.34"},
		{100, "1"},
		{5, "0.05"},
		{150, "1.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Decimal(); got != tc.want {
			t.Fatalf("%d cents: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"25000", "12.34", "0.05", "1.50"} {
		m, err := ParseAmount(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got := m.Decimal(); got != s {
			t.Fatalf("round trip %q -> %q", s, got)
		}
	}
}
