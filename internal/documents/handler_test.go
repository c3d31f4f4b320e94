package documents

import "testing"

func TestRejectReason(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		size        int64
		wantReject  bool
	}{
		{name: "pdf ok", fileName: "a.pdf", contentType: "application/pdf", size: 1024},
		{name: "pdf with charset", fileName: "a.pdf", contentType: "application/pdf; charset=binary", size: 1024},
		{name: "octet-stream with pdf ext", fileName: "a.pdf", contentType: "application/octet-stream", size: 1024},
		{name: "missing type with pdf ext", fileName: "a.PDF", contentType: "", size: 1024},
		{name: "word doc", fileName: "a.docx", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", size: 1024, wantReject: true},
		{name: "octet-stream wrong ext", fileName: "a.txt", contentType: "application/octet-stream", size: 1024, wantReject: true},
		{name: "too large", fileName: "a.pdf", contentType: "application/pdf", size: 6 << 20, wantReject: true},
		{name: "at limit", fileName: "a.pdf", contentType: "application/pdf", size: 5 << 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			reason := rejectReason(tt.fileName, tt.contentType, tt.size)
			if tt.wantReject && reason == "" {
				t.Fatalf("expected rejection for %s", tt.name)
			}
			if !tt.wantReject && reason != "" {
				t.Fatalf("unexpected rejection: %s", reason)
			}
		})
	}
}
