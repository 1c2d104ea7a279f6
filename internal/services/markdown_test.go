package services

import "testing"

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "hello world", "hello world"},
		{"dot and underscore", "a.b_c", "a\\.b\\_c"},
		{"exclamation", "Done!", "Done\\!"},
		{"all reserved", "_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{"url", "https://github.com/u/repo", "https://github\\.com/u/repo"},
		{"unicode untouched", "مرحبا 👋", "مرحبا 👋"},
		{"mixed", "v1.2-beta (final)", "v1\\.2\\-beta \\(final\\)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeMarkdownV2(tt.input); got != tt.want {
				t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeMarkdownV2AppliedTwiceDoubles(t *testing.T) {
	once := EscapeMarkdownV2("a.b")
	twice := EscapeMarkdownV2(once)
	if twice != "a\\\\.b" {
		t.Errorf("double escape = %q, escaping is not idempotent and callers must escape exactly once", twice)
	}
}
