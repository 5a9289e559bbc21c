package grpcfireauth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// TokenExtractor pulls the raw authorization value from an incoming RPC.
// The value is returned scheme and all; the verifier enforces the Bearer
// scheme, so extraction never needs to parse it.
type TokenExtractor func(ctx context.Context) string

// MetadataTokenExtractor reads the "authorization" metadata field.
func MetadataTokenExtractor(ctx context.Context) string {
	return MetadataFieldTokenExtractor("authorization")(ctx)
}

// MetadataFieldTokenExtractor reads a named metadata field.
func MetadataFieldTokenExtractor(field string) TokenExtractor {
	return func(ctx context.Context) string {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return ""
		}
		values := md.Get(field)
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
}

// MultiTokenExtractor runs extractors in order and returns the first
// non-empty value.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(ctx context.Context) string {
		for _, ex := range extractors {
			if v := ex(ctx); v != "" {
				return v
			}
		}
		return ""
	}
}
