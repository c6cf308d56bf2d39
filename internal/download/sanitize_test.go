// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"regexp"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "/docs/datasheet.pdf", "datasheet.pdf"},
		{"uppercase lowered", "/docs/Material_Safety.PDF", "material_safety.pdf"},
		{"full url", "https://host/docs/A.pdf", "a.pdf"},
		{"percent decoding", "/docs/safety%20data%20sheet.pdf", "safety_data_sheet.pdf"},
		{"foreign extension forced", "/docs/report.docx", "report.pdf"},
		{"no extension", "/docs/report", "report.pdf"},
		{"symbols replaced", "/docs/sds (v2) [final].pdf", "sds_v2_final.pdf"},
		{"underscore runs collapsed", "/docs/a---__--b.pdf", "a_b.pdf"},
		{"leading and trailing trimmed", "/docs/__wrapped__.pdf", "wrapped.pdf"},
		{"only separators", "https://host/___.pdf", ""},
		{"only symbols", "/docs/%20%20.pdf", ""},
		{"empty path", "/", ""},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameIdempotent(t *testing.T) {
	inputs := []string{
		"/docs/Material_Safety.PDF",
		"/docs/safety%20data%20sheet.pdf",
		"/docs/sds (v2) [final].pdf",
		"/docs/report.docx",
	}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		if once == "" {
			t.Fatalf("SanitizeFilename(%q) unexpectedly empty", in)
		}
		twice := SanitizeFilename(once)
		if twice != once {
			t.Errorf("SanitizeFilename not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestSanitizeFilenameShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9_]+\.pdf$`)
	inputs := []string{
		"/docs/datasheet.pdf",
		"/docs/Material_Safety.PDF",
		"/docs/safety%20data%20sheet.pdf",
		"/docs/sds (v2) [final].pdf",
		"/docs/report",
		"/docs/42.txt",
	}
	for _, in := range inputs {
		got := SanitizeFilename(in)
		if got == "" {
			t.Fatalf("SanitizeFilename(%q) unexpectedly empty", in)
		}
		if !shape.MatchString(got) {
			t.Errorf("SanitizeFilename(%q) = %q, does not match %v", in, got, shape)
		}
	}
}
