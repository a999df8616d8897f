package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKeyType string

const vendorIDKey contextKeyType = "vendor_id"

// RequireVendor rejects requests that do not identify the acting vendor via
// the X-Vendor-ID header. Session resolution happens upstream at the gateway;
// this service only consumes the resolved identity.
func RequireVendor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vendorID := r.Header.Get("X-Vendor-ID")
			if vendorID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "missing X-Vendor-ID header",
				})
				return
			}

			ctx := context.WithValue(r.Context(), vendorIDKey, vendorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VendorIDFromContext returns the vendor ID set by RequireVendor, or "".
func VendorIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(vendorIDKey).(string); ok {
		return id
	}
	return ""
}
