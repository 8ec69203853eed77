package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	month, ok := IsValidMonth("2026-02")
	if !ok {
		t.Fatalf("IsValidMonth(2026-02) = false, want true")
	}
	if month.Year() != 2026 || month.Month() != 2 || month.Day() != 1 {
		t.Errorf("IsValidMonth(2026-02) = %v, want 2026-02-01", month)
	}

	invalid := []string{"2026-13", "2026", "02-2026", "2026-2", ""}
	for _, s := range invalid {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidAmount(t *testing.T) {
	valid := []string{"0", "100", "30000.50", "0.75"}
	invalid := []string{"-100", "1,000", "abc", "10.", ".5", ""}
	for _, s := range valid {
		if !IsValidAmount(s) {
			t.Errorf("IsValidAmount(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidAmount(s) {
			t.Errorf("IsValidAmount(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
