package s3

import (
	"encoding/hex"
	"testing"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "batch/file.pdf", want: "batch/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "batch/file.pdf", want: "root/batch/file.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "batch/file.pdf", want: "root/batch/file.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/batch/file.pdf", want: "root/batch/file.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "batch/file.pdf", want: "root/sub/batch/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestRandomIDShapeAndUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := randomID()
		if len(id) != 32 {
			t.Fatalf("randomID() = %q, want 32 hex chars", id)
		}
		if _, err := hex.DecodeString(id); err != nil {
			t.Fatalf("randomID() = %q, not hex: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("randomID() repeated %q", id)
		}
		seen[id] = true
	}
}
