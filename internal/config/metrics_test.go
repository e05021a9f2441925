package config

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClassifyConfigError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "none", err: nil, want: "none"},
		{name: "validation", err: errors.New("validate config: AGROMARKET_BASE_URL must be set"), want: "validation"},
		{name: "parse", err: errors.New("parse config: invalid duration"), want: "parse"},
		{name: "other", err: errors.New("some other load error"), want: "load"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyConfigError(tc.err); got != tc.want {
				t.Fatalf("classifyConfigError()=%q want %q", got, tc.want)
			}
		})
	}
}

func FuzzTrimAPISuffixRobustness(f *testing.F) {
	f.Add("https://api.agromarket.example/api")
	f.Add("/api")
	f.Add("")
	f.Add(strings.Repeat("/api", 1024))

	f.Fuzz(func(t *testing.T, raw string) {
		if len(raw) > 8192 {
			raw = raw[:8192]
		}

		got := trimAPISuffix(raw)
		if !utf8.ValidString(raw) {
			return
		}
		if !utf8.ValidString(got) {
			t.Fatalf("trimmed URL must be valid UTF-8: %q", got)
		}
		if !strings.HasPrefix(raw, got) {
			t.Fatalf("result must be a prefix of the input: raw=%q got=%q", raw, got)
		}

		again := trimAPISuffix(raw)
		if got != again {
			t.Fatalf("trimAPISuffix must be deterministic: first=%q second=%q", got, again)
		}
	})
}
