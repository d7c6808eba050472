package images_test

import (
	"testing"

	"github.com/elokaagu/omahub/internal/images"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"bare path anchored to storage", "brands/ehbs.jpg", "https://storage.omahub.com/brands/ehbs.jpg"},
		{"bare path with leading slash", "/brands/ehbs.jpg", "https://storage.omahub.com/brands/ehbs.jpg"},
		{"http upgraded", "http://example.com/a.jpg", "https://example.com/a.jpg"},
		{"https untouched", "https://example.com/a.jpg", "https://example.com/a.jpg"},
		{"legacy host rewritten", "https://omahub-images.s3.amazonaws.com/brands/x.jpg", "https://storage.omahub.com/brands/x.jpg"},
		{"legacy host http rewritten and upgraded", "http://omahub-images.s3.amazonaws.com/x.jpg", "https://storage.omahub.com/x.jpg"},
		{"signed query stripped on storage host", "https://storage.omahub.com/x.jpg?X-Amz-Signature=abc&X-Amz-Expires=300", "https://storage.omahub.com/x.jpg"},
		{"query kept on foreign host", "https://example.com/x.jpg?v=2", "https://example.com/x.jpg?v=2"},
		{"surrounding whitespace trimmed", "  https://example.com/a.jpg  ", "https://example.com/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := images.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLeadImage(t *testing.T) {
	tests := []struct {
		name     string
		gallery  []string
		expected string
	}{
		{"empty gallery", nil, ""},
		{"all blank", []string{"", "  "}, ""},
		{"first non-empty wins", []string{"", "brands/a.jpg", "brands/b.jpg"}, "https://storage.omahub.com/brands/a.jpg"},
		{"single entry", []string{"https://example.com/x.jpg"}, "https://example.com/x.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := images.LeadImage(tt.gallery)
			if got != tt.expected {
				t.Errorf("LeadImage(%v) = %q, want %q", tt.gallery, got, tt.expected)
			}
		})
	}
}
