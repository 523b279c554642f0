package core

import (
	"errors"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseInt / ParseOptionalInt Tests
// ----------------------------------------------------------------------------

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "positive", input: "64", want: 64},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-1", want: -1},
		{name: "surrounding whitespace", input: " 12 ", want: 12},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "null sentinel", input: `\N`, wantErr: true},
		{name: "decimal", input: "1.5", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      int64
		wantErr   bool
	}{
		{name: "value", input: "7", wantValid: true, want: 7},
		{name: "empty is absent", input: ""},
		{name: "null sentinel is absent", input: `\N`},
		{name: "padded null sentinel is absent", input: ` \N `},
		{name: "garbage fails", input: "x7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptionalInt(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOptionalInt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("ParseOptionalInt(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.Valid && got.Int64 != tt.want {
				t.Errorf("ParseOptionalInt(%q) = %d, want %d", tt.input, got.Int64, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseFlag Tests
// ----------------------------------------------------------------------------

func TestParseFlag(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{" 1 ", true},
		{"0", false},
		{"", false},
		{"true", false},
		{"yes", false},
		{"2", false},
	}

	for _, tt := range tests {
		if got := ParseFlag(tt.input); got != tt.want {
			t.Errorf("ParseFlag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// ToPgText Tests
// ----------------------------------------------------------------------------

func TestToPgText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      string
	}{
		{name: "simple", input: "bulbasaur", wantValid: true, want: "bulbasaur"},
		{name: "trimmed", input: "  x^2  ", wantValid: true, want: "x^2"},
		{name: "empty", input: ""},
		{name: "whitespace", input: "\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgText(tt.input)
			if got.Valid != tt.wantValid || got.String != tt.want {
				t.Errorf("ToPgText(%q) = %+v, want {%q %v}", tt.input, got, tt.want, tt.wantValid)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		checks map[string]int // key -> expected index
	}{
		{
			name:   "simple headers",
			header: []string{"id", "identifier", "species_id"},
			checks: map[string]int{"id": 0, "identifier": 1, "species_id": 2},
		},
		{
			name:   "case insensitive lookup",
			header: []string{"ID", "Identifier"},
			checks: map[string]int{"id": 0, "identifier": 1},
		},
		{
			name:   "headers with whitespace",
			header: []string{"  id  ", " order "},
			checks: map[string]int{"id": 0, "order": 1},
		},
		{
			name:   "empty header",
			header: []string{},
			checks: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := MakeHeaderIndex(tt.header)
			if len(idx) != len(tt.checks) {
				t.Errorf("len(MakeHeaderIndex(%v)) = %d, want %d", tt.header, len(idx), len(tt.checks))
			}
			for key, wantPos := range tt.checks {
				gotPos, ok := idx[key]
				if !ok {
					t.Errorf("MakeHeaderIndex(%v)[%q] not found, want index %d", tt.header, key, wantPos)
					continue
				}
				if gotPos != wantPos {
					t.Errorf("MakeHeaderIndex(%v)[%q] = %d, want %d", tt.header, key, gotPos, wantPos)
				}
			}
		})
	}
}

// ----------------------------------------------------------------------------
// RowParser Tests
// ----------------------------------------------------------------------------

func TestRowParser(t *testing.T) {
	idx := MakeHeaderIndex([]string{"id", "identifier", "order", "is_default"})

	t.Run("reads typed values", func(t *testing.T) {
		p := NewRowParser([]string{"1", "bulbasaur", "", "1"}, idx)
		if got := p.Int("id"); got != 1 {
			t.Errorf("Int(id) = %d, want 1", got)
		}
		if got := p.Text("identifier"); got != "bulbasaur" {
			t.Errorf("Text(identifier) = %q, want bulbasaur", got)
		}
		if got := p.OptionalInt("order"); got.Valid {
			t.Errorf("OptionalInt(order) = %+v, want absent", got)
		}
		if !p.Flag("is_default") {
			t.Error("Flag(is_default) = false, want true")
		}
		if err := p.Err(); err != nil {
			t.Errorf("Err() = %v, want nil", err)
		}
	})

	t.Run("first error wins", func(t *testing.T) {
		p := NewRowParser([]string{"x", "bulbasaur", "y", "1"}, idx)
		_ = p.Int("id")
		_ = p.OptionalInt("order")

		var fieldErr *FieldError
		if !errors.As(p.Err(), &fieldErr) {
			t.Fatalf("Err() = %v, want *FieldError", p.Err())
		}
		if fieldErr.Column != "id" || fieldErr.Value != "x" {
			t.Errorf("FieldError = %+v, want column id value x", fieldErr)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		p := NewRowParser([]string{"1"}, MakeHeaderIndex([]string{"id"}))
		_ = p.Text("identifier")
		if !errors.Is(p.Err(), ErrMissingColumn) {
			t.Errorf("Err() = %v, want ErrMissingColumn", p.Err())
		}
	})

	t.Run("short row", func(t *testing.T) {
		p := NewRowParser([]string{"1"}, idx)
		_ = p.Text("identifier")
		if !errors.Is(p.Err(), ErrMissingColumn) {
			t.Errorf("Err() = %v, want ErrMissingColumn", p.Err())
		}
	})

	t.Run("fail records external errors", func(t *testing.T) {
		p := NewRowParser([]string{"1"}, idx)
		sentinel := errors.New("unknown code")
		p.Fail("type_id", "99", sentinel)
		p.Fail("other", "", errors.New("ignored"))
		if !errors.Is(p.Err(), sentinel) {
			t.Errorf("Err() = %v, want %v", p.Err(), sentinel)
		}
	})
}
