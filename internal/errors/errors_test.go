package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E220",
			wantMsg: "Invalid starui.yaml",
			wantCat: CategoryConfig,
		},
		{
			name:    "registry error",
			code:    "E243",
			wantMsg: "Component not found",
			wantCat: CategoryRegistry,
		},
		{
			name:    "validation error",
			code:    "E240",
			wantMsg: "Invalid component names",
			wantCat: CategoryValidation,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "app.py")
	if err.Message != `file "app.py" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "app.py" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestStarError_Error(t *testing.T) {
	err := New("E243")
	if got, want := err.Error(), "E243: Component not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithDetail("button")
	if got, want := err.Error(), "E243: Component not found: button"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &StarError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestStarError_Builders(t *testing.T) {
	err := New("E221").
		WithSuggestion("Use a path ending in .css").
		WithDetailf("got %q", "static/out.txt")

	if err.Suggestion != "Use a path ending in .css" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Detail != `got "static/out.txt"` {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestStarError_Wrap(t *testing.T) {
	inner := New("E244")
	outer := New("E243").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestStarError_Is(t *testing.T) {
	err := New("E245").WithDetail("a -> b -> a")
	wrapped := fmt.Errorf("resolve: %w", err)

	if !stderrors.Is(wrapped, ErrCycle) {
		t.Error("wrapped cycle error should match ErrCycle")
	}
	if stderrors.Is(wrapped, ErrNotFound) {
		t.Error("cycle error should not match ErrNotFound")
	}
	if stderrors.Is(&StarError{Message: "no code"}, &StarError{}) {
		t.Error("errors without code should not match")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E244") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	se := New("E243")
	if FromError(fmt.Errorf("ctx: %w", se), "E244") != se {
		t.Error("FromError should return the StarError in the chain")
	}

	stdErr := stderrors.New("connection refused")
	result := FromError(stdErr, "E244")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Detail != "connection refused" {
		t.Errorf("Detail = %q, want %q", result.Detail, "connection refused")
	}
}

func TestCode(t *testing.T) {
	if got := Code(fmt.Errorf("x: %w", New("E242"))); got != "E242" {
		t.Errorf("Code() = %q, want E242", got)
	}
	if got := Code(stderrors.New("plain")); got != "" {
		t.Errorf("Code() = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E243").
		WithDetail("No component named 'buton' in the registry").
		WithSuggestion("Run 'star list' to see available components")

	formatted := err.Format()

	for _, want := range []string{
		"ERROR E243: Component not found",
		"No component named 'buton'",
		"Hint: Run 'star list'",
		"Learn more: https://starui.dev/docs/errors/E243",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E240").WithDetail("Bad!")
	want := "E240: Invalid component names: Bad!"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("boom"))
	if !strings.Contains(buf.String(), "ERROR: boom") {
		t.Errorf("Fprint plain = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("wrapped: %w", New("E241")))
	if !strings.Contains(buf.String(), "E241: Project already initialized") {
		t.Errorf("Fprint coded = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	found := false
	for _, code := range codes {
		if code == "E246" {
			found = true
			break
		}
	}
	if !found {
		t.Error("E246 should be in the codes list")
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E247")
	if !ok {
		t.Fatal("E247 should exist")
	}
	if template.Message != "Package installation failed" {
		t.Error("Template message mismatch")
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom test error",
		DocURL:   "https://test.dev/E999",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("one\ntwo", 20)
	if len(got) != 2 {
		t.Errorf("wrapText newlines: expected 2 lines, got %v", got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}
