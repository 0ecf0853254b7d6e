package llm

import "fmt"

// Kind classifies a gateway call outcome.
type Kind string

const (
	// KindRateLimited means the upstream reported throttling; the caller may
	// retry later.
	KindRateLimited Kind = "RATE_LIMITED"
	// KindPaymentRequired means the upstream reported a billing failure.
	// Terminal, not retryable.
	KindPaymentRequired Kind = "PAYMENT_REQUIRED"
	// KindUpstream covers any other non-2xx response or an empty completion.
	KindUpstream Kind = "UPSTREAM"
	// KindConfiguration means a required credential or endpoint is missing.
	// Raised before any network call.
	KindConfiguration Kind = "CONFIGURATION"
)

// GatewayError is a classified gateway failure.
type GatewayError struct {
	Kind       Kind
	StatusCode int
	Detail     string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s (status %d): %s", e.Kind, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("gateway %s: %s", e.Kind, e.Detail)
}

// AsGatewayError extracts a *GatewayError from err if present.
func AsGatewayError(err error) (*GatewayError, bool) {
	gwErr, ok := err.(*GatewayError)
	return gwErr, ok
}
