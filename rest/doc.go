// Package rest provides the authenticated HTTP session the SDK uses to
// talk to the MatGraph platform.
//
// A Session exchanges the configured API key for a short-lived bearer
// token and refreshes it transparently, including once mid-call when
// the platform reports the token expired. Non-2xx responses are mapped
// onto the structured error taxonomy in package apierr; the session
// itself never retries, leaving retry policy to callers who can branch
// on apierr.IsRetryable.
package rest
