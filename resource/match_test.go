package resource

import "testing"

func TestBestMatch(t *testing.T) {
	tests := []struct {
		name     string
		variants []map[string]string
		current  map[string]string
		want     int
		wantTie  bool
	}{
		{
			name:     "empty",
			variants: nil,
			current:  map[string]string{"language": "en"},
			want:     -1,
		},
		{
			name: "exact wins",
			variants: []map[string]string{
				{"language": "fr"},
				{"language": "en"},
			},
			current: map[string]string{"language": "en"},
			want:    1,
		},
		{
			name: "language base",
			variants: []map[string]string{
				{"language": "fr"},
				{"language": "en-US"},
			},
			current: map[string]string{"language": "en-GB"},
			want:    1,
		},
		{
			name: "lacking tag beats conflicting",
			variants: []map[string]string{
				{"language": "fr", "resolution": "hd"},
				{"resolution": "hd"},
			},
			current: map[string]string{"language": "en", "resolution": "hd"},
			want:    1,
		},
		{
			name: "exact count before passable",
			variants: []map[string]string{
				{},
				{"language": "en", "resolution": "sd"},
			},
			current: map[string]string{"language": "en", "resolution": "hd"},
			want:    1,
		},
		{
			name: "tie resolves to first",
			variants: []map[string]string{
				{"resolution": "sd"},
				{"resolution": "ld"},
			},
			current: map[string]string{"resolution": "hd"},
			want:    0,
			wantTie: true,
		},
		{
			name: "no current tags",
			variants: []map[string]string{
				{"language": "en"},
			},
			current: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tie := BestMatch(tt.variants, tt.current)
			if got != tt.want || tie != tt.wantTie {
				t.Errorf("BestMatch() = %d, %v, want %d, %v", got, tie, tt.want, tt.wantTie)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"en":    "en",
		"EN-us": "en-US",
		"zz!":   "zz!",
	}
	for in, want := range tests {
		if got := NormalizeLanguage(in); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
