package transparency

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"trustview/internal/types"
)

// =============================================================================
// FAILURE CLASSIFICATION
// =============================================================================

// FailureCategory explains why the Orchestrator stopped a failed intent.
type FailureCategory int

const (
	// FailureNone is returned for intents that did not fail.
	FailureNone FailureCategory = iota

	// FailureBalanceBlock means the wallet could not pay for gas.
	FailureBalanceBlock

	// FailureContractReject means the destination contract reverted.
	FailureContractReject

	// FailureGenericBlock is the fallback for any other failure.
	FailureGenericBlock
)

// String returns the category name.
func (c FailureCategory) String() string {
	names := []string{
		"none",
		"balance_block",
		"contract_reject",
		"generic_block",
	}
	if int(c) >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "generic_block"
}

// Prefix returns the display prefix for this category.
func (c FailureCategory) Prefix() string {
	prefixes := []string{
		"",
		"[BALANCE]",
		"[CONTRACT]",
		"[BLOCKED]",
	}
	if int(c) >= 0 && int(c) < len(prefixes) {
		return prefixes[c]
	}
	return "[BLOCKED]"
}

// insufficientFundsMarker is the substring the Orchestrator's chain client
// reports when the signer cannot cover gas.
const insufficientFundsMarker = "insufficient funds"

// IsInsufficientFunds reports whether message carries the insufficient-funds
// marker, case-insensitively. ClassifyFailure and EvaluateBalance both use it
// so the banner and the balance check cannot disagree.
func IsInsufficientFunds(message string) bool {
	return strings.Contains(strings.ToLower(message), insufficientFundsMarker)
}

// ClassifyFailure maps a failed intent's message to a failure category.
// Rules are ordered; the first match wins.
func ClassifyFailure(status types.Status, message string) FailureCategory {
	if status != types.StatusFailed {
		return FailureNone
	}

	msg := strings.ToLower(message)

	switch {
	case IsInsufficientFunds(msg):
		return FailureBalanceBlock
	case strings.Contains(msg, "revert"):
		return FailureContractReject
	default:
		return FailureGenericBlock
	}
}

// =============================================================================
// TRANSPORT ERROR CLASSIFICATION
// =============================================================================

// ErrorCategory classifies dashboard-side errors for user guidance.
type ErrorCategory int

const (
	// ErrorCategoryNetwork indicates the Orchestrator could not be reached.
	ErrorCategoryNetwork ErrorCategory = iota

	// ErrorCategoryTimeout indicates a request ran past its deadline.
	ErrorCategoryTimeout

	// ErrorCategoryHTTP indicates a non-200 response.
	ErrorCategoryHTTP

	// ErrorCategoryDecode indicates a response body that was not the expected JSON.
	ErrorCategoryDecode

	// ErrorCategoryStore indicates an offline database problem.
	ErrorCategoryStore

	// ErrorCategoryUnknown is the fallback for unclassified errors.
	ErrorCategoryUnknown
)

// Prefix returns the display prefix for this error category.
func (c ErrorCategory) Prefix() string {
	prefixes := []string{
		"[NET]",
		"[TIMEOUT]",
		"[HTTP]",
		"[DECODE]",
		"[STORE]",
		"[ERROR]",
	}
	if int(c) >= 0 && int(c) < len(prefixes) {
		return prefixes[c]
	}
	return "[ERROR]"
}

// String returns the category name.
func (c ErrorCategory) String() string {
	names := []string{
		"network",
		"timeout",
		"http",
		"decode",
		"store",
		"unknown",
	}
	if int(c) >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// statusCoder is implemented by transport errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// temporary is implemented by errors that know whether a retry may succeed.
type temporary interface {
	Temporary() bool
}

// retryHint leads the remediation of HTTP errors the server marks as transient.
const retryHint = "The Orchestrator reported a temporary failure; press r to retry"

// ClassifiedError wraps an error with classification and remediation.
type ClassifiedError struct {
	Original    error
	Category    ErrorCategory
	Summary     string
	Remediation []string
}

// Error implements the error interface.
func (ce *ClassifiedError) Error() string {
	return ce.Format()
}

// Unwrap returns the original error for errors.Is/As compatibility.
func (ce *ClassifiedError) Unwrap() error {
	return ce.Original
}

// Headline returns the one-line form used in banners.
func (ce *ClassifiedError) Headline() string {
	return fmt.Sprintf("%s %s: %v", ce.Category.Prefix(), ce.Summary, ce.Original)
}

// Format returns a user-friendly error message with remediation.
func (ce *ClassifiedError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n\n", ce.Category.Prefix(), ce.Summary))
	sb.WriteString(fmt.Sprintf("Details: %s\n", ce.Original.Error()))

	if len(ce.Remediation) > 0 {
		sb.WriteString("\nSuggested fixes:\n")
		for _, r := range ce.Remediation {
			sb.WriteString(fmt.Sprintf("  - %s\n", r))
		}
	}

	return sb.String()
}

// ClassifyTransportError analyzes a fetch error and returns a classified version.
func ClassifyTransportError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	classified := &ClassifiedError{
		Original: err,
		Category: ErrorCategoryUnknown,
		Summary:  "Failed to fetch data",
	}

	var sc statusCoder
	var netErr net.Error
	errStr := strings.ToLower(err.Error())

	switch {
	case errors.As(err, &sc):
		classified.Category = ErrorCategoryHTTP
		classified.Summary = fmt.Sprintf("Failed to fetch data: %d", sc.StatusCode())

	case errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		containsAny(errStr, "timeout", "deadline", "timed out"):
		classified.Category = ErrorCategoryTimeout
		classified.Summary = "Orchestrator did not answer in time"

	case containsAny(errStr, "decode", "unmarshal", "invalid character", "unexpected end of json"):
		classified.Category = ErrorCategoryDecode
		classified.Summary = "Orchestrator returned a malformed payload"

	case containsAny(errStr, "sqlite", "database", "no such table"):
		classified.Category = ErrorCategoryStore
		classified.Summary = "Could not read the Orchestrator database"

	case errors.As(err, &netErr) ||
		containsAny(errStr, "connection", "network", "dial", "dns", "no such host", "unreachable"):
		classified.Category = ErrorCategoryNetwork
		classified.Summary = "Connection error"
	}

	classified.Remediation = GetRecoveryGuide(classified.Category)

	var tmp temporary
	if classified.Category == ErrorCategoryHTTP && errors.As(err, &tmp) && tmp.Temporary() {
		classified.Remediation = append([]string{retryHint}, classified.Remediation...)
	}
	return classified
}

// containsAny returns true if s contains any of the patterns.
func containsAny(s string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// GetRecoveryGuide returns remediation steps for an error category.
func GetRecoveryGuide(category ErrorCategory) []string {
	guides := map[ErrorCategory][]string{
		ErrorCategoryNetwork: {
			"Check that the Orchestrator is running",
			"Verify API_URL points at the Orchestrator",
			"Press r to refresh once it is back",
		},
		ErrorCategoryTimeout: {
			"The Orchestrator may be busy executing a workflow",
			"Increase orchestrator.timeout in the config",
		},
		ErrorCategoryHTTP: {
			"Check the Orchestrator logs for the failing route",
			"Verify the wallet address filter is valid",
		},
		ErrorCategoryDecode: {
			"Check that API_URL points at an Orchestrator and not another service",
			"Compare the Orchestrator version with this dashboard",
		},
		ErrorCategoryStore: {
			"Check that --db points at an Orchestrator database",
			"Make sure the file is readable",
		},
	}

	if steps, ok := guides[category]; ok {
		return steps
	}
	return []string{"Check trustview.log for more details", "Press r to retry"}
}
