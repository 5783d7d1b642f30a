package trade

import "testing"

func TestValidAmountInput(t *testing.T) {
	valid := []string{"", "1", "1.5", ".5", "1.", "0.000001", "123456789"}
	for _, input := range valid {
		if !ValidAmountInput(input) {
			t.Fatalf("expected %q to be accepted", input)
		}
	}

	invalid := []string{"abc", "1..2", "1,5", "-1", "1e9", " 1", "1 "}
	for _, input := range invalid {
		if ValidAmountInput(input) {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestToSmallestUnit(t *testing.T) {
	got, ok := ToSmallestUnit("1.5", 9)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if got != "1500000000" {
		t.Fatalf("expected 1500000000 got %s", got)
	}

	got, ok = ToSmallestUnit("2", 6)
	if !ok || got != "2000000" {
		t.Fatalf("expected 2000000 got %s (ok=%v)", got, ok)
	}

	got, ok = ToSmallestUnit(".25", 6)
	if !ok || got != "250000" {
		t.Fatalf("expected 250000 got %s (ok=%v)", got, ok)
	}
}

func TestToSmallestUnitFractional(t *testing.T) {
	// Amounts below one smallest unit cannot be represented and must be
	// reported as unconvertible rather than rounded.
	if _, ok := ToSmallestUnit("0.0000000001", 9); ok {
		t.Fatal("expected sub-lamport amount to be rejected")
	}
	if _, ok := ToSmallestUnit("1.0000001", 6); ok {
		t.Fatal("expected fractional micro amount to be rejected")
	}
}

func TestToSmallestUnitInvalid(t *testing.T) {
	for _, input := range []string{"", ".", "abc"} {
		if _, ok := ToSmallestUnit(input, 9); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestFromSmallestUnit(t *testing.T) {
	got, err := FromSmallestUnit("2000000", 6)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != "2" {
		t.Fatalf("expected 2 got %s", got)
	}

	got, err = FromSmallestUnit("1500000000", 9)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != "1.5" {
		t.Fatalf("expected 1.5 got %s", got)
	}

	if _, err := FromSmallestUnit("not-a-number", 9); err == nil {
		t.Fatal("expected error for invalid input")
	}
}
