package llm

import "context"

// Purposes tag requests in the llm_events log.
const (
	PurposeCoach     = "coach"
	PurposeDiagnosis = "error-diagnosis"
	PurposePing      = "ping"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to ctx for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
