package middleware

import (
	"strings"
	"testing"
)

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid token", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"prefixed id", "external-dQw4w9WgXcQ", "external-dQw4w9WgXcQ", false},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", strings.Repeat("x", 513), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid youtube", "UCuAXFkgsw1L7xaCfnd5JJOw", "UCuAXFkgsw1L7xaCfnd5JJOw", false},
		{"valid local", "local-channel-1", "local-channel-1", false},
		{"empty", "", "", true},
		{"too long 65", strings.Repeat("a", 65), "", true},
		{"exactly 64", strings.Repeat("a", 64), strings.Repeat("a", 64), false},
		{"invalid chars", "UC test!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSearchQuery(t *testing.T) {
	if got, errMsg := ValidateSearchQuery("  golang tutorials  "); got != "golang tutorials" || errMsg != "" {
		t.Errorf("got %q, %q", got, errMsg)
	}
	if got, errMsg := ValidateSearchQuery(""); got != "" || errMsg != "" {
		t.Errorf("empty query should be allowed, got %q, %q", got, errMsg)
	}
	if _, errMsg := ValidateSearchQuery(strings.Repeat("q", 201)); errMsg == "" {
		t.Error("expected error for over-length query")
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty allowed", "", "", false},
		{"simple", "Music", "Music", false},
		{"with ampersand", "Science & Technology", "Science & Technology", false},
		{"too long", strings.Repeat("c", 41), "", true},
		{"invalid chars", "music; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateCategory(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty defaults", "", 0, false},
		{"valid", "25", 25, false},
		{"max", "100", 100, false},
		{"zero", "0", 0, true},
		{"over max", "101", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateLimit(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	if got, errMsg := ValidatePattern(" trending "); got != "trending" || errMsg != "" {
		t.Errorf("got %q, %q", got, errMsg)
	}
	if got, errMsg := ValidatePattern(""); got != "" || errMsg != "" {
		t.Errorf("empty pattern should be allowed, got %q, %q", got, errMsg)
	}
	if _, errMsg := ValidatePattern(strings.Repeat("p", 257)); errMsg == "" {
		t.Error("expected error for over-length pattern")
	}
}
