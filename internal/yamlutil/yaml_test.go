package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-valentine/internal/yamlutil"
)

type pageDoc struct {
	Question string   `yaml:"question"`
	Labels   []string `yaml:"labels"`
	Steps    int      `yaml:"steps"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("question: Willst du?\nlabels: [Nein, Sicher?]\nsteps: 5"),
			dest: &pageDoc{},
			check: func(t *testing.T, v any) {
				doc := v.(*pageDoc)
				if doc.Question != "Willst du?" {
					t.Errorf("Question = %q, want %q", doc.Question, "Willst du?")
				}
				if len(doc.Labels) != 2 || doc.Labels[1] != "Sicher?" {
					t.Errorf("Labels = %v, want [Nein Sicher?]", doc.Labels)
				}
				if doc.Steps != 5 {
					t.Errorf("Steps = %d, want 5", doc.Steps)
				}
			},
		},
		{
			name: "unknown fields are ignored",
			data: []byte("question: hi\nextra: true"),
			dest: &pageDoc{},
			check: func(t *testing.T, v any) {
				if v.(*pageDoc).Question != "hi" {
					t.Errorf("Question = %q, want %q", v.(*pageDoc).Question, "hi")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &pageDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("question: hi"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid syntax",
			data:    []byte("labels: [unclosed"),
			dest:    &pageDoc{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown fields are rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields decode", func(t *testing.T) {
		t.Parallel()

		var doc pageDoc
		if err := yamlutil.UnmarshalStrict([]byte("question: hi"), &doc); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if doc.Question != "hi" {
			t.Errorf("Question = %q, want %q", doc.Question, "hi")
		}
	})

	t.Run("unknown field fails", func(t *testing.T) {
		t.Parallel()

		var doc pageDoc
		err := yamlutil.UnmarshalStrict([]byte("question: hi\nquestoin: typo"), &doc)
		if err == nil {
			t.Fatal("expected error for unknown field, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want yamlutil prefix", err)
		}
	})

	t.Run("oversized input fails", func(t *testing.T) {
		t.Parallel()

		data := []byte("question: " + strings.Repeat("x", yamlutil.MaxInputSize))
		var doc pageDoc
		err := yamlutil.UnmarshalStrict(data, &doc)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Round trip keeps values
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := pageDoc{Question: "Willst du?", Labels: []string{"Nein", "Sicher?"}, Steps: 5}
	out, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "question: Willst du?") {
		t.Errorf("Marshal() output missing question:\n%s", out)
	}

	var back pageDoc
	if err := yamlutil.UnmarshalStrict(out, &back); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error = %v", err)
	}
	if back.Steps != 5 || len(back.Labels) != 2 {
		t.Errorf("round trip = %+v, want %+v", back, in)
	}
}
