package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError(3, "species %q unknown", "foo")
	want := `collision record #3: species "foo" unknown`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIOFailureErrorUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOFailure(2, "/tmp/Collisions2.h5", cause)

	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error() = %q, want it to mention the cause", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestInternalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Internal did not panic")
		}
	}()
	Internal("unreachable: %d", 42)
}
