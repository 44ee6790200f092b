// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and classification helpers

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/dedup/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid root directory",
			wantStr: "[INVALID_INPUT] invalid root directory",
		},
		{
			name:    "not_a_file_error",
			code:    errors.ErrNotAFile,
			message: "path is a directory",
			wantStr: "[NOT_A_FILE] path is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrIOFailure, "read failed")

		if err.Code != errors.ErrIOFailure {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrIOFailure)
		}
		if !stderrors.Is(err, baseErr) {
			t.Error("Wrap() should preserve the wrapped error chain")
		}
	})

	t.Run("wrap_nil_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrIOFailure, "read failed"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrNotFound, "missing: %s", "/tmp/x")

	if !errors.IsErrorCode(err, errors.ErrNotFound) {
		t.Error("IsErrorCode() should match NOT_FOUND")
	}
	if errors.IsErrorCode(err, errors.ErrPermission) {
		t.Error("IsErrorCode() should not match PERMISSION")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrNotFound) {
		t.Error("IsErrorCode() should not match plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrPermission, "denied")); got != errors.ErrPermission {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrPermission)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestClassifyIO(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"not_exist", fs.ErrNotExist, errors.ErrNotFound},
		{"permission", fs.ErrPermission, errors.ErrPermission},
		{"wrapped_not_exist", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, errors.ErrNotFound},
		{"wrapped_permission", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, errors.ErrPermission},
		{"generic", stderrors.New("disk on fire"), errors.ErrIOFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.ClassifyIO(tt.err); got != tt.want {
				t.Errorf("ClassifyIO() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapIO(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/gone", Err: fs.ErrNotExist}
	err := errors.WrapIO(pathErr, "/gone")

	if err.Code != errors.ErrNotFound {
		t.Errorf("WrapIO() code = %v, want %v", err.Code, errors.ErrNotFound)
	}
	if err.Details["path"] != "/gone" {
		t.Errorf("WrapIO() path detail = %v, want /gone", err.Details["path"])
	}
	if errors.WrapIO(nil, "/gone") != nil {
		t.Error("WrapIO(nil) should return nil")
	}
}
