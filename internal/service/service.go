// Package service enforces authorization policy in front of the repositories.
// Policy lives here and only here; the store layer trusts its callers except
// for the protected-account checks it owns outright.
//
// Update and delete operations report false for both "not found" and
// "forbidden" so callers cannot probe for the existence of content they do
// not own.
package service

import (
	"context"

	"echos/internal/middleware"
)

// Content limits. Oversized input is rejected with a validation error.
const (
	MaxTitleLen   = 200
	MaxContentLen = 5000
	MaxCommentLen = 2000
)

// deny records a policy denial for metrics and the audit log. Callers return
// false to the client afterwards.
func deny(ctx context.Context, operation string, attrs ...any) {
	middleware.PolicyDenials.WithLabelValues(operation).Inc()
	middleware.Logger.WarnContext(ctx, "operation denied by policy",
		append([]any{"operation", operation}, attrs...)...)
}
