package gemd

// Code is a Gemini status code as defined in the Gemini spec Appendix 1.
// The zero-ish CodeInvalid sentinel stands in for any value outside the
// two-digit range; class membership is always derived arithmetically from
// the decade.
type Code int

// Status codes with a defined meaning. Values inside [10, 69] that are not
// named here are still valid members of their decade class.
const (
	CodeInvalid Code = 0

	CodeInput          Code = 10
	CodeSensitiveInput Code = 11

	CodeSuccess Code = 20

	CodeRedirectPermanent Code = 30
	CodeRedirectTemporary Code = 31

	CodeTemporaryFailure  Code = 40
	CodeServerUnavailable Code = 41
	CodeCGIError          Code = 42
	CodeProxyError        Code = 43
	CodeSlowDown          Code = 44

	CodePermanentFailure    Code = 50
	CodeNotFound            Code = 51
	CodeGone                Code = 52
	CodeProxyRequestRefused Code = 53
	CodeBadRequest          Code = 59

	CodeClientCertificateRequired Code = 60
	CodeCertificateUnauthorized   Code = 61
	CodeCertificateNotValid       Code = 62
)

// CodeFromByte maps any byte to a status code. Values in [10, 69] map to
// themselves, everything else to CodeInvalid.
func CodeFromByte(b byte) Code {
	if b < 10 || b > 69 {
		return CodeInvalid
	}
	return Code(b)
}

func (c Code) inRange(low, high Code) bool {
	return c >= low && c <= high
}

// IsInput reports whether the code asks the client for input.
func (c Code) IsInput() bool {
	return c.inRange(10, 19)
}

// IsSuccess reports whether the code is in the success class, the only
// class whose responses carry a body.
func (c Code) IsSuccess() bool {
	return c.inRange(20, 29)
}

// IsRedirect reports whether the code is a redirect.
func (c Code) IsRedirect() bool {
	return c.inRange(30, 39)
}

// IsTemporaryFailure reports whether the code is a temporary failure.
func (c Code) IsTemporaryFailure() bool {
	return c.inRange(40, 49)
}

// IsPermanentFailure reports whether the code is a permanent failure.
func (c Code) IsPermanentFailure() bool {
	return c.inRange(50, 59)
}

// IsClientCertificateFailure reports whether the code is client
// certificate related.
func (c Code) IsClientCertificateFailure() bool {
	return c.inRange(60, 69)
}

// FirstDigit returns the decade digit of the two digit code.
func (c Code) FirstDigit() int {
	return int(c) / 10
}

// LastDigit returns the last digit of the two digit code.
func (c Code) LastDigit() int {
	return int(c) % 10
}

// DigitPair returns the first and last digits of the two digit code.
func (c Code) DigitPair() (int, int) {
	return c.FirstDigit(), c.LastDigit()
}

// Simplify drops the detailed second digit of the code, leaving only the
// class decade.
func (c Code) Simplify() Code {
	return (c / 10) * 10
}

// IsValid reports whether the code is inside the two-digit range the
// protocol covers.
func (c Code) IsValid() bool {
	return c >= 10 && c <= 69
}

func (c Code) String() string {
	switch c {
	case CodeInput:
		return "Input"
	case CodeSensitiveInput:
		return "SensitiveInput"
	case CodeSuccess:
		return "Success"
	case CodeRedirectPermanent:
		return "RedirectPermanent"
	case CodeRedirectTemporary:
		return "RedirectTemporary"
	case CodeTemporaryFailure:
		return "TemporaryFailure"
	case CodeServerUnavailable:
		return "ServerUnavailable"
	case CodeCGIError:
		return "CGIError"
	case CodeProxyError:
		return "ProxyError"
	case CodeSlowDown:
		return "SlowDown"
	case CodePermanentFailure:
		return "PermanentFailure"
	case CodeNotFound:
		return "NotFound"
	case CodeGone:
		return "Gone"
	case CodeProxyRequestRefused:
		return "ProxyRequestRefused"
	case CodeBadRequest:
		return "BadRequest"
	case CodeClientCertificateRequired:
		return "ClientCertificateRequired"
	case CodeCertificateUnauthorized:
		return "CertificateUnauthorized"
	case CodeCertificateNotValid:
		return "CertificateNotValid"
	}
	if c.IsValid() {
		switch {
		case c.IsInput():
			return "Input"
		case c.IsSuccess():
			return "Success"
		case c.IsRedirect():
			return "Redirect"
		case c.IsTemporaryFailure():
			return "TemporaryFailure"
		case c.IsPermanentFailure():
			return "PermanentFailure"
		default:
			return "ClientCertificateFailure"
		}
	}
	return "Invalid"
}
