package logging_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stateledger/budgetextract/internal/logging"
)

func TestUserError(t *testing.T) {
	cause := errors.New("underlying cause")
	err := logging.UserError("Invalid input", "Check your input and try again", cause)

	if err.Category != logging.ErrorCategoryUser {
		t.Errorf("Expected USER category, got %v", err.Category)
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "[USER]") {
		t.Error("Error message should contain [USER] category")
	}
	if !strings.Contains(errMsg, "Invalid input") {
		t.Error("Error message should contain message")
	}
	if !strings.Contains(errMsg, "Check your input") {
		t.Error("Error message should contain solution")
	}
}

func TestSystemError(t *testing.T) {
	cause := errors.New("network timeout")
	err := logging.SystemError("Network failure", "Check your connection", cause)

	if err.Category != logging.ErrorCategorySystem {
		t.Errorf("Expected SYSTEM category, got %v", err.Category)
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "[SYSTEM]") {
		t.Error("Error message should contain [SYSTEM] category")
	}
}

func TestDeveloperError(t *testing.T) {
	err := logging.DeveloperError("Result shape mismatch", "Regenerate the output schema", nil)

	if err.Category != logging.ErrorCategoryDeveloper {
		t.Errorf("Expected DEVELOPER category, got %v", err.Category)
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "[DEVELOPER]") {
		t.Error("Error message should contain [DEVELOPER] category")
	}
}

func TestCategorizedError_WithContext(t *testing.T) {
	err := logging.UserError("Test error", "Fix it", nil).
		WithContext("key1", "value1").
		WithContext("key2", "value2")

	errMsg := err.Error()
	if !strings.Contains(errMsg, "key1: value1") {
		t.Error("Error should contain context key1")
	}
	if !strings.Contains(errMsg, "key2: value2") {
		t.Error("Error should contain context key2")
	}
}

func TestCategorizedError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := logging.UserError("Wrapper error", "Solution", cause)

	unwrapped := errors.Unwrap(err)
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return the original cause")
	}
	if unwrapped == nil {
		t.Error("Unwrapped error should not be nil")
	}
}

func TestInvalidArgumentError(t *testing.T) {
	err := logging.InvalidArgumentError("--invalid-flag", nil)

	if err.Category != logging.ErrorCategoryUser {
		t.Error("InvalidArgumentError should be USER category")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "--invalid-flag") {
		t.Error("Error should mention the invalid argument")
	}
	if !strings.Contains(errMsg, "--help") {
		t.Error("Error should suggest using --help")
	}
}

func TestMissingConfigError(t *testing.T) {
	err := logging.MissingConfigError("api.key", nil)

	errMsg := err.Error()
	if !strings.Contains(errMsg, "api.key") {
		t.Error("Error should mention the config key")
	}
	if !strings.Contains(errMsg, "config init") {
		t.Error("Error should suggest config init")
	}
}

func TestPdftotextFailedError(t *testing.T) {
	err := logging.PdftotextFailedError("/path/to/budget.pdf", errors.New("exit status 1"))

	if err.Category != logging.ErrorCategorySystem {
		t.Error("PdftotextFailedError should be SYSTEM category")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/path/to/budget.pdf") {
		t.Error("Error should mention the file path")
	}
	if !strings.Contains(errMsg, "poppler-utils") {
		t.Error("Error should suggest checking poppler-utils")
	}
}

func TestPdfinfoFailedError(t *testing.T) {
	err := logging.PdfinfoFailedError("/path/to/budget.pdf", errors.New("exit status 1"))

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/path/to/budget.pdf") {
		t.Error("Error should mention the file path")
	}
	if !strings.Contains(errMsg, "pdfinfo_failed") {
		t.Error("Error should carry the pdfinfo_failed context code")
	}
}

func TestUnreadableInputError(t *testing.T) {
	err := logging.UnreadableInputError("/tmp/layout.txt", errors.New("permission denied"))

	if err.Category != logging.ErrorCategoryUser {
		t.Error("UnreadableInputError should be USER category")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/tmp/layout.txt") {
		t.Error("Error should mention the file path")
	}
}

func TestSchemaValidationError(t *testing.T) {
	err := logging.SchemaValidationError("/tmp/out.json", errors.New("missing required field"))

	if err.Category != logging.ErrorCategoryDeveloper {
		t.Error("SchemaValidationError should be DEVELOPER category")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/tmp/out.json") {
		t.Error("Error should mention the output path")
	}
}

func TestBatchDocumentFailedError(t *testing.T) {
	err := logging.BatchDocumentFailedError("/docs/state-2026.pdf", errors.New("timeout"))

	if err.Category != logging.ErrorCategorySystem {
		t.Error("BatchDocumentFailedError should be SYSTEM category")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "/docs/state-2026.pdf") {
		t.Error("Error should mention the document path")
	}
}

func TestFileSystemError(t *testing.T) {
	err := logging.FileSystemError("write", "/tmp/test.log", errors.New("permission denied"))

	if err.Category != logging.ErrorCategorySystem {
		t.Error("FileSystemError should be SYSTEM category")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "write") {
		t.Error("Error should mention the operation")
	}
	if !strings.Contains(errMsg, "/tmp/test.log") {
		t.Error("Error should mention the path")
	}
}
