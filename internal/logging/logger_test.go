package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("shape", "8x8"), "shape", "8x8"},
		{"Int", Int("outputs", 15), "outputs", 15},
		{"Uint64", Uint64("rounds", 1000), "rounds", uint64(1000)},
		{"Float64", Float64("seconds", 0.25), "seconds", 0.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.field.Key != tc.key {
				t.Errorf("Key = %q, want %q", tc.field.Key, tc.key)
			}
			if tc.field.Value != tc.value {
				t.Errorf("Value = %v, want %v", tc.field.Value, tc.value)
			}
		})
	}

	t.Run("Err uses the error key", func(t *testing.T) {
		testErr := errors.New("boom")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want the wrapped error", f.Value)
		}
	})
}

func TestNewLogger_TagsComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "compiler")
	logger.Info("plan compiled", Int("mul", 27))

	out := buf.String()
	for _, want := range []string{"compiler", "plan compiled", "27"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()

	t.Run("Info", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewZerologAdapter(zerolog.New(&buf))
		adapter.Info("compiling", String("shape", "4"))
		if !strings.Contains(buf.String(), "compiling") || !strings.Contains(buf.String(), "info") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("Error carries the cause", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewZerologAdapter(zerolog.New(&buf))
		adapter.Error("compile failed", errors.New("bad shape"), Int("n", 6))
		out := buf.String()
		for _, want := range []string{"compile failed", "bad shape", "6"} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got: %s", want, out)
			}
		}
	})

	t.Run("Debug honors level", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))
		adapter.Debug("round complete", Int("pending", 3))
		if !strings.Contains(buf.String(), "round complete") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("Printf formats", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewZerologAdapter(zerolog.New(&buf))
		adapter.Printf("scheduled %d statements", 12)
		if !strings.Contains(buf.String(), "scheduled 12 statements") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Info("hello", String("k", "v"))
	adapter.Error("failed", errors.New("cause"))
	adapter.Debug("detail")
	adapter.Println("a", "b")

	out := buf.String()
	for _, want := range []string{"INFO hello k=v", "ERROR failed: cause", "DEBUG detail", "a b"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestLoggerInterfaceSatisfied(t *testing.T) {
	t.Parallel()

	var _ Logger = (*ZerologAdapter)(nil)
	var _ Logger = (*StdLoggerAdapter)(nil)
}
