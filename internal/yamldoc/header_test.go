package yamldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		rest     string
		want     header
		wantRest string
	}{
		{"bare", "", header{}, ""},
		{"unity", " !u!4 &200", header{classID: "4", anchor: "200"}, ""},
		{"stripped", " !u!4 &300 stripped", header{classID: "4", anchor: "300", stripped: true}, ""},
		{"negative anchor", " !u!114 &-4216859302048453862", header{classID: "114", anchor: "-4216859302048453862"}, ""},
		{"inline content kept", " {a: 1}", header{}, "{a: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rest := parseHeader(tt.rest)
			assert.Equal(t, tt.want, h)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestRewriteHeaders_PreservesLineCount(t *testing.T) {
	clean, headers := rewriteHeaders([]byte(unityScene))

	assert.Len(t, headers, 4)
	assert.Equal(t, strings.Count(unityScene, "\n"), strings.Count(string(clean), "\n"))
	assert.NotContains(t, string(clean), "!u!")
	assert.NotContains(t, string(clean), "%TAG")
	assert.NotContains(t, string(clean), "stripped")
}

func TestRewriteHeaders_ImplicitFirstDocument(t *testing.T) {
	_, headers := rewriteHeaders([]byte("# comment\n\nguid: abc\n--- \nother: 1\n"))
	assert.Len(t, headers, 2)
}
