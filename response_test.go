package gemd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResponseBytes(t *testing.T) {
	tests := []struct {
		name     string
		response Response
		expected []byte
	}{
		{"input", Input("Enter a search term"), []byte("10 Enter a search term\r\n")},
		{"sensitive input", SensitiveInput("Password"), []byte("11 Password\r\n")},
		{"success empty body", Success("text/plain", nil), []byte("20 text/plain\r\n")},
		{"success default mime", Success("", []byte("# hi\n")), []byte("20 text/gemini\r\n# hi\n")},
		{"success binary body", Success("application/octet-stream", []byte{0x00, 0xff, 0x00}), append([]byte("20 application/octet-stream\r\n"), 0x00, 0xff, 0x00)},
		{"redirect permanent", RedirectPermanent("gemini://example.com/"), []byte("30 gemini://example.com/\r\n")},
		{"redirect temporary", RedirectTemporary("gemini://example.com/"), []byte("31 gemini://example.com/\r\n")},
		{"temporary failure", TemporaryFailure("try later"), []byte("40 try later\r\n")},
		{"server unavailable", ServerUnavailable("down"), []byte("41 down\r\n")},
		{"cgi error", CGIError("boom"), []byte("42 boom\r\n")},
		{"proxy error", ProxyError("no route"), []byte("43 no route\r\n")},
		{"slow down", SlowDown("10"), []byte("44 10\r\n")},
		{"permanent failure", PermanentFailure("no"), []byte("50 no\r\n")},
		{"not found", NotFound("Not found"), []byte("51 Not found\r\n")},
		{"gone", Gone("was here once"), []byte("52 was here once\r\n")},
		{"proxy request refused", ProxyRequestRefused("not for that host"), []byte("53 not for that host\r\n")},
		{"bad request", BadRequest("url exceeds 1024 bytes"), []byte("59 url exceeds 1024 bytes\r\n")},
		{"certificate required", CertificateRequired("cert please"), []byte("60 cert please\r\n")},
		{"certificate unauthorized", CertificateUnauthorized("not yours"), []byte("61 not yours\r\n")},
		{"certificate not valid", CertificateNotValid("bad cert"), []byte("62 bad cert\r\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := cmp.Diff(tt.expected, tt.response.Bytes())
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestResponseBytesLargeBody(t *testing.T) {
	// Bigger than the request read buffer, to prove the body is not framed
	// or chunked in any way.
	body := bytes.Repeat([]byte("abc\x00"), 1024)
	got := Success("application/octet-stream", body).Bytes()

	require.True(t, bytes.HasPrefix(got, []byte("20 application/octet-stream\r\n")))
	require.Equal(t, body, got[len("20 application/octet-stream\r\n"):])
}

func TestResponseBytesCRLFAlways(t *testing.T) {
	got := string(NotFound("nope").Bytes())
	require.True(t, strings.HasSuffix(got, "\r\n"))
	require.Equal(t, 1, strings.Count(got, "\r\n"))
}

func TestErrorResponse(t *testing.T) {
	res := ErrorResponse(Error{Status: CodeNotFound, Err: errors.New("missing")})
	require.Equal(t, CodeNotFound, res.Status)
	require.Contains(t, res.Meta, "missing")

	res = ErrorResponse(errors.New("plain"))
	require.Equal(t, CodeTemporaryFailure, res.Status)
	require.Equal(t, "plain", res.Meta)

	require.Panics(t, func() { ErrorResponse(nil) })
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Error{Status: CodeCGIError, Err: inner}
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "Status 42")
}
