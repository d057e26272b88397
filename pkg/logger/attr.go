package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation records the coordinator operation under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// OperationID records a per-call identifier under the key "operation_id".
func OperationID(id string) slog.Attr {
	return slog.String("operation_id", id)
}

// ProductID records the product identifier under the key "product_id".
// If id is empty, it returns an empty Attr.
func ProductID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("product_id", id)
}

// Variant records the paywall variant under the key "variant".
func Variant(v any) slog.Attr {
	return slog.Any("variant", v)
}

// Provider records the billing provider name under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Attempts records a retry budget or attempt count under the key "attempts".
func Attempts(n int) slog.Attr {
	return slog.Int("attempts", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
