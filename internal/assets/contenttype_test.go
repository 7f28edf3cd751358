package assets

import "testing"

func TestContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"run.js", "text/javascript"},
		{"/tmp/work/m_bg.wasm", "application/wasm"},
		{"index.html", "text/html"},
		{"styles.css", DefaultContentType},
		{"README", DefaultContentType},
		{"archive.tar.gz", DefaultContentType},
		{"", DefaultContentType},
		{"dir.js/file", DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ContentType(tt.path); got != tt.want {
				t.Errorf("ContentType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
