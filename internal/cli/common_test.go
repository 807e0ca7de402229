package cli

import "testing"

func TestResolveTargetLanguage(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{name: "exact code", code: "ja", want: "ja"},
		{name: "uppercase normalized", code: "JA", want: "ja"},
		{name: "surrounding whitespace", code: " fr ", want: "fr"},
		{name: "unknown code", code: "tlh", wantErr: true},
		{name: "language name rejected", code: "japanese", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTargetLanguage(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveTargetLanguage(%q) expected error, got %q", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTargetLanguage(%q) unexpected error: %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("resolveTargetLanguage(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   string
	}{
		{
			name:  "derived from media file",
			input: "video.mp4",
			want:  "video.srt",
		},
		{
			name:  "derived with directory",
			input: "/tmp/clips/episode.01.mkv",
			want:  "/tmp/clips/episode.01.srt",
		},
		{
			name:  "no extension",
			input: "recording",
			want:  "recording.srt",
		},
		{
			name:   "explicit output wins",
			input:  "video.mp4",
			output: "custom.srt",
			want:   "custom.srt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutputPath(tt.input, tt.output); got != tt.want {
				t.Errorf("defaultOutputPath(%q, %q) = %q, want %q",
					tt.input, tt.output, got, tt.want)
			}
		})
	}
}
