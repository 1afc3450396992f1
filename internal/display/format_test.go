package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical scan 4 MiB", 4194304, "4.0 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"positive", 1024 * 1024, "+ 1.0 MiB"},
		{"negative", -1024 * 1024, "- 1.0 MiB"},
		{"zero", 0, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytesWithSign(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytesWithSign(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
