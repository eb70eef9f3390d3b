package validation

import (
	"errors"
	"testing"

	"github.com/yigit/bandroster/internal/pkg/apperrors"
)

type sample struct {
	Section  string  `json:"section" validate:"required,oneof=WOODWIND 'FLAG CORP'"`
	ShoeSize string  `json:"shoeSize" validate:"omitempty,shoe_size"`
	GPA      float64 `json:"gpa" validate:"gte=0,lte=4"`
}

func TestStruct(t *testing.T) {
	cases := []struct {
		name    string
		in      sample
		wantErr bool
		field   string
	}{
		{"valid", sample{Section: "FLAG CORP", ShoeSize: "9.5", GPA: 3.1}, false, ""},
		{"empty shoe size", sample{Section: "WOODWIND"}, false, ""},
		{"missing section", sample{GPA: 2}, true, "section"},
		{"quoted enum", sample{Section: "FLAG"}, true, "section"},
		{"quarter shoe size", sample{Section: "WOODWIND", ShoeSize: "9.25"}, true, "shoeSize"},
		{"too large shoe", sample{Section: "WOODWIND", ShoeSize: "16"}, true, "shoeSize"},
		{"gpa range", sample{Section: "WOODWIND", GPA: 4.5}, true, "gpa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Struct err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("error %v does not wrap ErrValidationFailed", err)
			}
			fields := FieldErrors(err)
			if len(fields) == 0 || fields[0].Field != tc.field {
				t.Fatalf("fields = %+v, want %s first", fields, tc.field)
			}
		})
	}
}
