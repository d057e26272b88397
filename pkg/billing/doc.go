// Package billing defines the contract between the entitlement coordinator and
// the external billing/entitlement provider, plus the semi-structured payload
// types (placements, paywalls, products) that cross it.
//
// Adapters live in sub-packages:
//
//   - paddle: Paddle Billing via the official SDK
//   - static: a deterministic catalog loaded from YAML
//   - rediscache: a decorator that keeps the last good placements in Redis
//
// Providers report failures inside PurchaseResult and RestoreResult rather than
// as Go errors, because a failed purchase may still have changed entitlements.
// The coordinator always re-reads HasPremiumAccess instead of trusting outcomes.
package billing
