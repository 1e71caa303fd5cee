package analysis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStat(t *testing.T) {
	tests := []struct {
		token  string
		fields []Field
		canon  string
		label  string
	}{
		{"pts", []Field{Points}, "pts", "Points"},
		{"blk", []Field{Blocks}, "blk", "Blocked Shots"},
		{"fg3m", []Field{ThreesMade}, "fg3m", "3-PT Made"},
		{"pts+ast", []Field{Points, Assists}, "pts+ast", "Pts+Asts"},
		{"ast+pts", []Field{Assists, Points}, "ast+pts", "Asts+Pts"},
		{"pts+reb+ast", []Field{Points, Rebounds, Assists}, "pts+reb+ast", "Pts+Rebs+Asts"},
		{" PTS + Reb ", []Field{Points, Rebounds}, "pts+reb", "Pts+Rebs"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			spec, err := ParseStat(tt.token)
			if err != nil {
				t.Fatalf("ParseStat(%q) error: %v", tt.token, err)
			}
			if diff := cmp.Diff(tt.fields, spec.Fields); diff != "" {
				t.Errorf("ParseStat(%q) fields mismatch (-want +got):\n%s", tt.token, diff)
			}
			if spec.Token != tt.canon {
				t.Errorf("ParseStat(%q).Token = %q, want %q", tt.token, spec.Token, tt.canon)
			}
			if spec.Label != tt.label {
				t.Errorf("ParseStat(%q).Label = %q, want %q", tt.token, spec.Label, tt.label)
			}
		})
	}
}

func TestParseStatErrors(t *testing.T) {
	tests := []struct {
		token string
		want  error
	}{
		{"", ErrEmptyStatSpec},
		{"   ", ErrEmptyStatSpec},
		{"+", ErrEmptyStatSpec},
		{"xyz", ErrUnknownStatToken},
		{"pts+xyz", ErrUnknownStatToken},
		{"pts+", ErrUnknownStatToken},
		{"points", ErrUnknownStatToken},
		{"pts+pts", ErrInvalidStatCombination},
		{"pts+reb+ast+stl", ErrInvalidStatCombination},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := ParseStat(tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseStat(%q) error = %v, want %v", tt.token, err, tt.want)
			}
		})
	}
}

func TestParseStatUnknownTokenIsQuoted(t *testing.T) {
	_, err := ParseStat("pts+foo")
	if err == nil || err.Error() != `unknown stat token: "foo"` {
		t.Errorf("error = %v, want unknown stat token: \"foo\"", err)
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	if len(presets) != 17 {
		t.Fatalf("len(Presets()) = %d, want 17", len(presets))
	}
	if presets[0].Token != "pts" {
		t.Errorf("first preset = %q, want pts", presets[0].Token)
	}
	last := presets[len(presets)-1]
	if last.Token != "pts+reb+ast" || last.Label != "Pts+Rebs+Asts" {
		t.Errorf("last preset = %q/%q, want pts+reb+ast/Pts+Rebs+Asts", last.Token, last.Label)
	}

	// Callers get a copy.
	presets[0].Token = "changed"
	if Presets()[0].Token != "pts" {
		t.Error("Presets() should return a copy")
	}
}

func TestAllFieldsHaveTokens(t *testing.T) {
	fields := AllFields()
	if len(fields) != 12 {
		t.Fatalf("len(AllFields()) = %d, want 12", len(fields))
	}
	for _, f := range fields {
		got, ok := FieldFromToken(f.Token())
		if !ok || got != f {
			t.Errorf("FieldFromToken(%q) = %v, %v; want %v", f.Token(), got, ok, f)
		}
	}
	if Field(99).Valid() {
		t.Error("Field(99) should not be valid")
	}
	if Field(99).String() != "Field(99)" {
		t.Errorf("Field(99).String() = %q", Field(99).String())
	}
}
