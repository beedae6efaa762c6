// Package api provides HTTP execution for the Bluefox.email REST API.
// It handles authentication, request/response serialization, rate-limit
// gating, and automatic retry logic with exponential backoff for
// transient failures.
//
// # Request Execution
//
// Every SDK operation funnels through [Client.Do], which performs the
// following steps in order, each a possible short-circuit exit:
//
//  1. Strip nil-valued keys from map bodies (arrays pass through).
//  2. Run the request interceptor, if configured.
//  3. Check the rate limiter; a depleted quota fails without any I/O.
//  4. Issue the request with a per-attempt timeout, retrying transient
//     failures with exponential backoff.
//
// # Retry Behavior
//
// Only errors classified as [CodeServerError] or [CodeNetworkError] are
// retried. Validation, authentication, rate-limit, method-not-allowed,
// and timeout errors return immediately. The backoff before attempt n+1
// is min(1s * 2^n, 10s).
//
// # Error Handling
//
// Every failure is normalized into an [*Error] carrying a [Code] from a
// closed taxonomy, the HTTP status, and optional detail fields. Status
// codes map to codes (429 → rate limit, 401/403 → authentication,
// 400 → validation, >=500 → server error), with a secondary heuristic
// over structured error bodies producing more specific codes such as
// [CodeDuplicateEmail].
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may
// call methods on a single Client simultaneously; the rate limiter is
// the only shared mutable state and is internally synchronized.
package api
