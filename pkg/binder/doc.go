// Package binder decodes HTTP request bodies into Go structs.
//
// Only JSON is supported. The binder requires an application/json
// Content-Type, caps the body at DefaultMaxJSONSize, rejects unknown fields
// and trailing data, and trims surrounding whitespace from every decoded
// string.
//
//	bind := binder.JSON()
//	var req PurchaseRequest
//	if err := bind(r, &req); err != nil {
//	    // errors.Is(err, binder.ErrUnsupportedMediaType) and friends
//	}
package binder
