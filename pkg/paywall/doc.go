// Package paywall resolves the remotely configured paywall variant and the
// product it preselects.
//
// The placements payload is parsed defensively: the first placement's paywall is
// used, and its JSON map must carry an integer "paywall" code. Anything else
// resolves to Fallback rather than an error.
//
//	res := paywall.Resolve(placements)
//	def := paywall.SelectDefault(res.Variant, products)
package paywall
