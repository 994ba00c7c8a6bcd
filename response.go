package gemd

import "fmt"

// Response is a single Gemini response: a status code, the free-text meta
// field, and for success responses a body. A Response is built once by a
// handler, serialized once, and discarded; it is never shared between
// connections.
//
// Meta must not contain CR or LF. The serializer does not escape it; the
// constructor caller owns that boundary.
type Response struct {
	Status Code
	Meta   string
	Body   []byte
}

// Bytes renders the response wire format: the status line
// "<code> <meta>\r\n", then the body verbatim. The line terminator is CRLF
// on every platform and the body is copied with no transcoding.
func (r Response) Bytes() []byte {
	header := fmt.Sprintf("%d %s\r\n", int(r.Status), r.Meta)
	if len(r.Body) == 0 {
		return []byte(header)
	}
	out := make([]byte, 0, len(header)+len(r.Body))
	out = append(out, header...)
	out = append(out, r.Body...)
	return out
}

// Input asks the client to repeat the request with query input.
// The meta field is the prompt to show the user.
func Input(prompt string) Response {
	return Response{Status: CodeInput, Meta: prompt}
}

// SensitiveInput is Input for secrets; clients should not echo the typed
// text.
func SensitiveInput(prompt string) Response {
	return Response{Status: CodeSensitiveInput, Meta: prompt}
}

// Success carries a body. Meta is the body's MIME type; an empty meta is
// replaced by text/gemini.
func Success(meta string, body []byte) Response {
	if meta == "" {
		meta = "text/gemini"
	}
	return Response{Status: CodeSuccess, Meta: meta, Body: body}
}

// RedirectPermanent points the client at a new URL for good.
func RedirectPermanent(target string) Response {
	return Response{Status: CodeRedirectPermanent, Meta: target}
}

// RedirectTemporary points the client at a new URL for this request only.
func RedirectTemporary(target string) Response {
	return Response{Status: CodeRedirectTemporary, Meta: target}
}

// TemporaryFailure reports a failure the client may retry.
func TemporaryFailure(meta string) Response {
	return Response{Status: CodeTemporaryFailure, Meta: meta}
}

// ServerUnavailable reports the server is down for maintenance or overloaded.
func ServerUnavailable(meta string) Response {
	return Response{Status: CodeServerUnavailable, Meta: meta}
}

// CGIError reports a failure while generating dynamic content, with the
// underlying error description in meta.
func CGIError(meta string) Response {
	return Response{Status: CodeCGIError, Meta: meta}
}

// ProxyError reports a failure while proxying the request.
func ProxyError(meta string) Response {
	return Response{Status: CodeProxyError, Meta: meta}
}

// SlowDown tells the client to rate limit itself.
func SlowDown(meta string) Response {
	return Response{Status: CodeSlowDown, Meta: meta}
}

// PermanentFailure reports a failure that will not go away on retry.
func PermanentFailure(meta string) Response {
	return Response{Status: CodePermanentFailure, Meta: meta}
}

// NotFound reports the requested resource does not exist.
func NotFound(meta string) Response {
	return Response{Status: CodeNotFound, Meta: meta}
}

// Gone reports the resource existed once and will not again.
func Gone(meta string) Response {
	return Response{Status: CodeGone, Meta: meta}
}

// ProxyRequestRefused reports the server will not proxy for this host.
func ProxyRequestRefused(meta string) Response {
	return Response{Status: CodeProxyRequestRefused, Meta: meta}
}

// BadRequest reports the request line itself was unusable.
func BadRequest(meta string) Response {
	return Response{Status: CodeBadRequest, Meta: meta}
}

// CertificateRequired asks the client to repeat the request with a client
// certificate.
func CertificateRequired(meta string) Response {
	return Response{Status: CodeClientCertificateRequired, Meta: meta}
}

// CertificateUnauthorized rejects the presented client certificate for this
// resource.
func CertificateUnauthorized(meta string) Response {
	return Response{Status: CodeCertificateUnauthorized, Meta: meta}
}

// CertificateNotValid rejects the presented client certificate outright.
func CertificateNotValid(meta string) Response {
	return Response{Status: CodeCertificateNotValid, Meta: meta}
}

// ErrorResponse creates a response from the given error with the error
// string as the Meta field. If the error is of type gemd.Error, the status
// is taken from its Status field, otherwise it defaults to
// CodeTemporaryFailure. A nil error panics.
func ErrorResponse(err error) Response {
	if err == nil {
		panic("nil error is not a valid parameter")
	}

	if ge, ok := err.(Error); ok {
		return Response{Status: ge.Status, Meta: ge.Error()}
	}

	return Response{Status: CodeTemporaryFailure, Meta: err.Error()}
}
