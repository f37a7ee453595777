package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii untouched", in: "TRK-100", want: "TRK-100"},
		{name: "persian", in: "۱۴۰۲", want: "1402"},
		{name: "arabic-indic", in: "٣٤٥", want: "345"},
		{name: "mixed", in: "TRK-۱۲٣", want: "TRK-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDigits(tt.in); got != tt.want {
				t.Errorf("NormalizeDigits() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_FieldMap(t *testing.T) {
	err := &ValidationError{
		Err: errors.New("invalid form"),
		Fields: []FieldError{
			{Field: "name", Error: "required"},
			{Field: "belt", Error: "unknown rank"},
		},
	}
	want := map[string]string{"name": "required", "belt": "unknown rank"}
	if got := err.FieldMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldMap() = %v, want %v", got, want)
	}

	bare := &ValidationError{Err: errors.New("invalid form")}
	if got := bare.FieldMap(); got != nil {
		t.Errorf("FieldMap() without fields = %v, want nil", got)
	}
	if bare.Unwrap() == nil || bare.Unwrap().Error() != "invalid form" {
		t.Errorf("Unwrap() = %v, want the wrapped error", bare.Unwrap())
	}
}
