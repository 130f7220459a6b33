package sdk

// Version is the published client-core version.
// 0.4.0: Session state machine gains Subscribe cancellation funcs.
// 0.3.0: Breaking - Execute reuses the request ID header on the refresh
// replay so non-idempotent requests are safe to re-issue.
// 0.2.0: Single-flight refresh; bbolt keystore sealed with AES-GCM.
const Version = "0.4.0"
