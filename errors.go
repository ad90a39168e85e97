package console

import (
	stderrors "errors"

	"github.com/goliatone/go-errors"
)

// ErrStoreKeyNotFound is the error stores return for absent keys
var ErrStoreKeyNotFound = stderrors.New("store: key not found")

// ErrStaleResponse marks a network response that arrived after the
// session it belonged to was torn down; its result is discarded.
var ErrStaleResponse = stderrors.New("response discarded: session changed while request was in flight")

// ErrCredentialRejected is returned when the backend explicitly rejects
// a username/password pair or a registration payload. The server
// message is surfaced verbatim via rejectionError.
var ErrCredentialRejected = errors.New("credentials rejected", errors.CategoryAuth).
	WithTextCode("CREDENTIALS_REJECTED").
	WithCode(errors.CodeUnauthorized)

// ErrNetworkFailure is returned when a request could not complete at
// all (DNS, timeout, connectivity), as opposed to being rejected.
var ErrNetworkFailure = errors.New("network failure", errors.CategoryOperation).
	WithTextCode("NETWORK_FAILURE").
	WithCode(errors.CodeInternal)

// ErrTokenExpired is returned when the access token is expired and
// could not be refreshed.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens whose payload cannot be
// decoded. Decode ambiguity always resolves to denial.
var ErrTokenMalformed = errors.New("token malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthenticated is returned when an operation requires a signed
// in principal and none is present.
var ErrNotAuthenticated = errors.New("not authenticated", errors.CategoryAuth).
	WithTextCode("NOT_AUTHENTICATED").
	WithCode(errors.CodeUnauthorized)

// ErrProfileMissing is returned when a Credential is persisted without
// its Profile (or vice versa); the session is treated as corrupted and
// forced out.
var ErrProfileMissing = errors.New("profile missing for credential", errors.CategoryConflict).
	WithTextCode("PROFILE_MISSING").
	WithCode(errors.CodeConflict)

// rejectionError clones ErrCredentialRejected carrying the
// server-provided message so callers can render it inline.
func rejectionError(message string) error {
	if message == "" {
		return ErrCredentialRejected
	}
	clone := ErrCredentialRejected.Clone()
	if clone == nil {
		return ErrCredentialRejected
	}
	clone.Message = message
	clone.Source = ErrCredentialRejected
	return clone
}

// networkError wraps a transport-level failure under the
// ErrNetworkFailure taxonomy.
func networkError(err error, operation string) error {
	return errors.Wrap(err, ErrNetworkFailure.Category, "network error during "+operation).
		WithTextCode(ErrNetworkFailure.TextCode)
}

// IsCredentialRejected reports whether err carries the rejection
// text code.
func IsCredentialRejected(err error) bool {
	return hasTextCode(err, ErrCredentialRejected.TextCode)
}

// IsNetworkFailure reports whether err carries the network failure
// text code.
func IsNetworkFailure(err error) bool {
	return hasTextCode(err, ErrNetworkFailure.TextCode)
}

// IsTokenExpired reports whether err carries the token expiry
// text code.
func IsTokenExpired(err error) bool {
	return hasTextCode(err, ErrTokenExpired.TextCode)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
