package validation

import "testing"

func TestNormalizeCPF(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"529.982.247-25", "52998224725"},
		{"52998224725", "52998224725"},
		{"529 982 247 25", "52998224725"},
	}
	for _, tt := range tests {
		if got := NormalizeCPF(tt.in); got != tt.want {
			t.Errorf("NormalizeCPF(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want bool
	}{
		{"valid bare", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"wrong second check digit", "52998224726", false},
		{"wrong first check digit", "52998224735", false},
		{"repeated digits", "11111111111", false},
		{"repeated zeros", "00000000000", false},
		{"too short", "5299822472", false},
		{"too long", "529982247255", false},
		{"letters", "5299822472a", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCPF(tt.cpf); got != tt.want {
				t.Fatalf("IsValidCPF(%q) = %v, want %v", tt.cpf, got, tt.want)
			}
		})
	}
}
