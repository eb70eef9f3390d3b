package models

import "testing"

func TestIsEligibleScenarios(t *testing.T) {
	cases := []struct {
		hours int
		gpa   float64
		paid  bool
		want  bool
	}{
		{14, 3.20, true, true},
		{12, 2.85, true, false},
		{12, 3.0, true, true},
		{11, 4.0, true, false},
		{18, 3.9, false, false},
		{0, 0, false, false},
	}
	for _, tc := range cases {
		if got := IsEligible(tc.hours, tc.gpa, tc.paid); got != tc.want {
			t.Fatalf("IsEligible(%d, %.2f, %v) = %v, want %v", tc.hours, tc.gpa, tc.paid, got, tc.want)
		}
	}
}

func TestIsEligibleMonotonic(t *testing.T) {
	gpas := []float64{0, 1.5, 2.99, 3.0, 3.5, 4.0}
	for hours := 0; hours <= 20; hours++ {
		for gi, gpa := range gpas {
			for _, paid := range []bool{false, true} {
				base := IsEligible(hours, gpa, paid)
				if !base {
					continue
				}
				if !IsEligible(hours+1, gpa, paid) {
					t.Fatalf("more hours lost eligibility at (%d, %.2f)", hours, gpa)
				}
				if gi+1 < len(gpas) && !IsEligible(hours, gpas[gi+1], paid) {
					t.Fatalf("higher gpa lost eligibility at (%d, %.2f)", hours, gpa)
				}
				if !paid {
					t.Fatalf("eligible without dues at (%d, %.2f)", hours, gpa)
				}
			}
		}
	}
}

func TestParseStudentID(t *testing.T) {
	cases := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"300819037", 300819037, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"12a", 0, true},
		{"1.5", 0, true},
		{"99999999999999999999", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseStudentID(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseStudentID(%q) err = %v, wantErr %v", tc.raw, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseStudentID(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for raw, want := range map[string]Category{
		"instrument":  CategoryInstrument,
		"Instruments": CategoryInstrument,
		"uniforms":    CategoryUniform,
		"SHAKO":       CategoryShako,
	} {
		got, err := ParseCategory(raw)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseCategory("tuba"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if Category("uniforms").Valid() {
		t.Fatalf("plural form must not be a valid category value")
	}
}

func TestShoeSizes(t *testing.T) {
	sizes := ShoeSizes()
	if len(sizes) != 22 {
		t.Fatalf("len = %d, want 22", len(sizes))
	}
	if sizes[1] != "5" || sizes[2] != "5.5" || sizes[len(sizes)-1] != "15" {
		t.Fatalf("unexpected sizes %v", sizes)
	}
}

func TestUnitSpecColumns(t *testing.T) {
	spec := NewInstrument(3, "  CL-44321 ")
	if spec.Category() != CategoryInstrument {
		t.Fatalf("category = %q", spec.Category())
	}
	if spec.Columns()["serial"] != "CL-44321" {
		t.Fatalf("serial not trimmed: %v", spec.Columns())
	}
	typed, ok := spec.(InstrumentTyped)
	if !ok || typed.InstrumentTypeID() != 3 {
		t.Fatalf("instrument spec should expose its type id")
	}
	if _, ok := NewShako("M").(InstrumentTyped); ok {
		t.Fatalf("shako spec must not reference the catalog")
	}
}
