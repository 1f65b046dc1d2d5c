package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		list    string
		want    []string
	}{
		{"missing LANG ignores LANGUAGE", "", "de:fr", []string{"en"}},
		{"nothing set", "", "", []string{"en"}},
		{"missing LANGUAGE", "de", "", []string{"de", "en"}},
		{"LANGUAGE comes first", "de", "fr:cn", []string{"fr", "cn", "de", "en"}},
		{"country code expansion", "pt_BR", "", []string{"pt_BR", "pt", "en"}},
		{"encoding suffix", "en_US.UTF-8", "", []string{"en_US", "en"}},
		{"POSIX ignored", "POSIX", "", []string{"en"}},
		{"C ignored", "C", "", []string{"en"}},
		{"no duplicates", "de", "fr:de:cn:de", []string{"fr", "de", "cn", "en"}},
		{"empty list entries skipped", "it", "::es::", []string{"es", "it", "en"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.primary, tt.list)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Default, got[len(got)-1])
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LANG", "de_DE.UTF-8")
	t.Setenv("LANGUAGE", "fr")

	assert.Equal(t, []string{"fr", "de_DE", "de", "en"}, FromEnv())
}
