package gemd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeFromByte(t *testing.T) {
	for b := 0; b <= 255; b++ {
		code := CodeFromByte(byte(b))
		if b >= 10 && b <= 69 {
			require.Equal(t, Code(b), code, "byte %d should map to itself", b)
		} else {
			require.Equal(t, CodeInvalid, code, "byte %d should map to CodeInvalid", b)
		}
	}
}

func TestCodeClassPredicates(t *testing.T) {
	for b := 10; b <= 69; b++ {
		code := CodeFromByte(byte(b))

		matches := 0
		for _, p := range []bool{
			code.IsInput(),
			code.IsSuccess(),
			code.IsRedirect(),
			code.IsTemporaryFailure(),
			code.IsPermanentFailure(),
			code.IsClientCertificateFailure(),
		} {
			if p {
				matches++
			}
		}
		require.Equal(t, 1, matches, "code %d should match exactly one class", b)
	}
}

func TestCodeInvalidFailsEveryPredicate(t *testing.T) {
	require.False(t, CodeInvalid.IsInput())
	require.False(t, CodeInvalid.IsSuccess())
	require.False(t, CodeInvalid.IsRedirect())
	require.False(t, CodeInvalid.IsTemporaryFailure())
	require.False(t, CodeInvalid.IsPermanentFailure())
	require.False(t, CodeInvalid.IsClientCertificateFailure())
	require.False(t, CodeInvalid.IsValid())
}

func TestCodeDigitPair(t *testing.T) {
	for b := 10; b <= 69; b++ {
		code := CodeFromByte(byte(b))
		first, last := code.DigitPair()
		require.Equal(t, b/10, first)
		require.Equal(t, b%10, last)
		require.Equal(t, b, first*10+last, "digit pair should round-trip to the code")
	}
}

func TestCodeSimplify(t *testing.T) {
	tests := []struct {
		complex Code
		simple  Code
	}{
		{CodeInput, 10},
		{CodeSuccess, 20},
		{Code(21), 20},
		{CodeSlowDown, 40},
		{CodeBadRequest, 50},
	}

	for _, tt := range tests {
		result := tt.complex.Simplify()
		if result != tt.simple {
			t.Errorf("Expected the simplified status of %d to be %d, got %d instead", tt.complex, tt.simple, result)
		}
	}
}

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeInput, "Input"},
		{CodeSuccess, "Success"},
		{CodeNotFound, "NotFound"},
		{CodeGone, "Gone"},
		{CodeBadRequest, "BadRequest"},
		{Code(35), "Redirect"},
		{Code(67), "ClientCertificateFailure"},
		{CodeInvalid, "Invalid"},
		{Code(99), "Invalid"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.code.String())
	}
}
