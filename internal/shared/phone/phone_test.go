package phone

import "testing"

func TestNormalize(t *testing.T) {
	got, err := Normalize("11999998888", "+55")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "+5511999998888" {
		t.Fatalf("unexpected normalized phone: %s", got)
	}
}

func TestNormalizeRejectsNonDigits(t *testing.T) {
	if _, err := Normalize("abc123", "+55"); err == nil {
		t.Fatalf("expected rejection for non-digit phone")
	}
	if _, err := Normalize("", "+55"); err == nil {
		t.Fatalf("expected rejection for empty phone")
	}
	if _, err := Normalize("11 99999-8888", "+55"); err == nil {
		t.Fatalf("expected rejection for separators")
	}
}
