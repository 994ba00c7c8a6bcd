package gemd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEchoHandler(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		status Code
		meta   string
		body   string
	}{
		{"echo with query", "gemini://localhost/echo?hello%20world", CodeSuccess, "text/plain", "hello world\r\n"},
		{"echo without query", "gemini://localhost/echo", CodeInput, "Please enter some text", ""},
		{"echo plain query", "gemini://localhost/echo?hi", CodeSuccess, "text/plain", "hi\r\n"},
		{"root gets help", "gemini://localhost/", CodeSuccess, "text/gemini", echoHelp},
		{"other path gets help", "gemini://localhost/anything", CodeSuccess, "text/gemini", echoHelp},
	}

	h := EchoHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.Handle(Request{URL: mustParse(t, tt.url)})
			require.Equal(t, tt.status, res.Status)
			require.Equal(t, tt.meta, res.Meta)
			require.Equal(t, tt.body, string(res.Body))
		})
	}
}
