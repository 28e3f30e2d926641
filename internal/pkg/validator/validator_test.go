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
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "20230101", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidWallClock(t *testing.T) {
	valid := []string{"00:00", "09:15", "22:30", "23:59"}
	invalid := []string{"24:00", "9:15", "09:60", "09:15:00", "0915", ""}
	for _, s := range valid {
		if !IsValidWallClock(s) {
			t.Errorf("IsValidWallClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidWallClock(s) {
			t.Errorf("IsValidWallClock(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"present", "graced", "late"}
	if !IsInSlice("graced", slice) {
		t.Error("IsInSlice(graced) = false, want true")
	}
	if IsInSlice("absent", slice) {
		t.Error("IsInSlice(absent) = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "required"},
		{Field: "end_date", Message: "bad format"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["start_date"] != "required" || m["end_date"] != "bad format" {
		t.Errorf("ToMap() = %v", m)
	}
}
