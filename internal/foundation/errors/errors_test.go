package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "gitstamp.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "gitstamp.yaml" {
			t.Errorf("expected context file=gitstamp.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if GetSeverity(err) != SeverityFatal {
			t.Error("expected error to have fatal severity")
		}
		if err.RetryStrategy() != RetryUserAction {
			t.Error("expected config error to need user action")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through fmt wrapping", func(t *testing.T) {
		inner := GitError("history query failed").Fatal().Build()
		wrapped := fmt.Errorf("page index: %w", inner)

		if !HasCategory(wrapped, CategoryGit) {
			t.Error("expected wrapped error to keep git category")
		}
		if GetSeverity(wrapped) != SeverityFatal {
			t.Errorf("expected fatal severity, got %s", GetSeverity(wrapped))
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to report internal category")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := BuildError("render failed").WithContext("page", "index").Build()
		derived := base.WithContext("builder", "html")

		if _, ok := base.Context().Get("builder"); ok {
			t.Error("expected original context to stay untouched")
		}
		page, _ := derived.Context().GetString("page")
		if page != "index" {
			t.Errorf("expected derived context to keep page, got %q", page)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryFileSystem, "write failed").
			Warning().
			Retryable().
			WithContext("path", "_build/index.html").
			WithContext("attempt", 1).
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if err.RetryStrategy() != RetryBackoff {
			t.Errorf("expected retry strategy %s, got %s", RetryBackoff, err.RetryStrategy())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
	})

	t.Run("WithCategory override", func(t *testing.T) {
		err := GitError("open failed").WithCategory(CategoryNotFound).Build()
		if err.Category() != CategoryNotFound {
			t.Errorf("expected category %s, got %s", CategoryNotFound, err.Category())
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"GitError", GitError("test"), CategoryGit, SeverityError, RetryNever},
			{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal, RetryNever},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryBackoff},
			{"DocsError", DocsError("test"), CategoryDocs, SeverityError, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}

		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}

		if _, exists3 := ctx.Get("nonexistent"); exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := ErrorContext{"key1": "value1", "shared": "original"}
		ctx2 := ErrorContext{"key2": "value2", "shared": "overridden"}

		merged := ctx1.Merge(ctx2)

		shared, _ := merged.GetString("shared")
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
		if len(merged) != 3 {
			t.Errorf("expected 3 keys after merge, got %d", len(merged))
		}
	})
}
