package services

import "context"

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	passKey   contextKey = "pass"
	talkIDKey contextKey = "talk_id"
)

// WithRunID annotates context with the reconciliation run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPass annotates context with the matching pass identifier.
func WithPass(ctx context.Context, pass string) context.Context {
	if pass == "" {
		return ctx
	}
	return context.WithValue(ctx, passKey, pass)
}

// PassFromContext returns the pass identifier if present.
func PassFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(passKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithTalkID annotates context with the talk currently being matched.
func WithTalkID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, talkIDKey, id)
}

// TalkIDFromContext returns the talk identifier if present.
func TalkIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(talkIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
