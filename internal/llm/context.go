package llm

import "context"

type purposeCtxKey struct{}

// WithPurpose labels the requests made with ctx, e.g. "onboarding" or
// "advice". The label ends up in the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeCtxKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
