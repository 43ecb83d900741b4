package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(422, "point not on curve")
	if err.GetCode() != 422 {
		t.Errorf("expected code 422, got %d", err.GetCode())
	}
	if err.GetMessage() != "point not on curve" {
		t.Errorf("expected message 'point not on curve', got %s", err.GetMessage())
	}

	t.Logf("Error: %s", err.Error())
}

func TestWithMetadata(t *testing.T) {
	err := New(400, "invalid key")

	err2 := err.WithMetadata(map[string]string{})
	if err != err2 {
		t.Error("WithMetadata with empty map should return same instance")
	}

	err3 := err.WithMetadata(map[string]string{"curve": "secp192r1", "length": "23"})
	if err == err3 {
		t.Error("WithMetadata should return new instance")
	}

	metadata := err3.GetMetadata()
	if metadata["curve"] != "secp192r1" || metadata["length"] != "23" {
		t.Errorf("metadata not set correctly: %v", metadata)
	}
	if err.GetMetadata() != nil {
		t.Error("original error must not be modified")
	}
}

func TestWithCause(t *testing.T) {
	originalErr := errors.New("entropy source failed")
	err := New(500, "key generation failed").WithCause(originalErr)

	if err.GetCause() != originalErr {
		t.Error("cause not set correctly")
	}
	if !errors.Is(err, originalErr) {
		t.Error("errors.Is should see the cause")
	}
}

func TestWithReason(t *testing.T) {
	base := New(400, "bad key")
	err := base.WithReason("INVALID_KEY_LENGTH")

	if base.GetReason() != "" {
		t.Error("WithReason should not modify the receiver")
	}
	if err.GetReason() != "INVALID_KEY_LENGTH" {
		t.Errorf("expected reason INVALID_KEY_LENGTH, got %s", err.GetReason())
	}

	// same code and reason compare equal regardless of message
	other := New(400, "another message").WithReason("INVALID_KEY_LENGTH")
	if !errors.Is(err, other) {
		t.Error("errors with the same code and reason should match")
	}
	if errors.Is(err, New(400, "bad key")) {
		t.Error("a reasonless error should not match one with a reason")
	}
}

func TestFromError(t *testing.T) {
	stdErr := errors.New("standard error")
	wrappedErr := FromError(stdErr)

	if wrappedErr.GetCode() != UnknownCode {
		t.Errorf("expected code %d, got %d", UnknownCode, wrappedErr.GetCode())
	}
	if wrappedErr.GetReason() != UnknownReason {
		t.Errorf("expected reason %s, got %s", UnknownReason, wrappedErr.GetReason())
	}

	existingErr := New(404, "not found")
	if FromError(existingErr) != existingErr {
		t.Error("FromError should return same instance for *Error")
	}

	wrapped := fmt.Errorf("handler: %w", existingErr)
	if FromError(wrapped) != existingErr {
		t.Error("FromError should find an *Error inside the chain")
	}

	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestRegister(t *testing.T) {
	errSentinel := errors.New("test: sentinel")
	Register(errSentinel, 422, "TEST_SENTINEL")

	err := fmt.Errorf("%w: details", errSentinel)
	ge := FromError(err)

	if ge.GetCode() != 422 || ge.GetReason() != "TEST_SENTINEL" {
		t.Errorf("unexpected mapping: %s", ge)
	}
	if ge.GetMessage() != err.Error() {
		t.Errorf("message should be the original text, got %s", ge.GetMessage())
	}
	if !errors.Is(ge, errSentinel) {
		t.Error("mapped error should keep the sentinel in its chain")
	}

	if Code(err) != 422 || Reason(err) != "TEST_SENTINEL" {
		t.Errorf("Code/Reason mismatch: %d %s", Code(err), Reason(err))
	}
	if Code(nil) != 200 || Reason(nil) != "" {
		t.Error("nil error should map to 200")
	}
}

func TestAsError(t *testing.T) {
	ge := BadRequest("bad")
	got, ok := AsError(fmt.Errorf("wrap: %w", ge))
	if !ok || got != ge {
		t.Error("AsError should unwrap to the *Error")
	}
	if _, ok := AsError(errors.New("plain")); ok {
		t.Error("AsError should fail for plain errors")
	}
}

func TestNewWithMetadata(t *testing.T) {
	metadata := map[string]string{"curve": "secp384r1", "op": "sign"}
	err := NewWithMetadata(422, metadata, "hash length mismatch")

	if err.GetCode() != 422 {
		t.Errorf("expected code 422, got %d", err.GetCode())
	}

	resultMetadata := err.GetMetadata()
	if resultMetadata["curve"] != "secp384r1" || resultMetadata["op"] != "sign" {
		t.Errorf("metadata not set correctly: %v", resultMetadata)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, 500, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}

	cause := errors.New("io")
	err := WrapWithMetadata(cause, 503, map[string]string{"k": "v"}, "unavailable %d", 1)
	if err.GetCode() != 503 || err.GetMessage() != "unavailable 1" || err.GetCause() != cause {
		t.Errorf("unexpected wrap result: %s", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		client bool
		server bool
	}{
		{"nil", nil, false, false},
		{"bad request", BadRequest("x"), true, false},
		{"unprocessable", UnprocessableEntity("point not on curve"), true, false},
		{"rate limited", TooManyRequests("slow down"), true, false},
		{"unavailable", ServiceUnavailable("pool full"), false, true},
		{"plain", errors.New("plain"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsClient(tt.err) != tt.client || IsServer(tt.err) != tt.server {
				t.Errorf("IsClient=%v IsServer=%v", IsClient(tt.err), IsServer(tt.err))
			}
		})
	}
}

func BenchmarkNewError(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New(500, "internal server error")
	}
}

func BenchmarkErrorString(b *testing.B) {
	err := New(422, "point not on curve").
		WithReason("POINT_NOT_ON_CURVE").
		WithMetadata(map[string]string{"curve": "secp256r1"}).
		WithCause(errors.New("x has no matching y"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}

func BenchmarkFromError(b *testing.B) {
	errSentinel := errors.New("bench: sentinel")
	Register(errSentinel, 400, "BENCH")
	err := fmt.Errorf("%w: wrapped", errSentinel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FromError(err)
	}
}
