package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const Header = `X-Request-Id`

type RequestIDCtxKey struct{}

// RequestIDMiddleware propagates the caller's correlation id or mints
// one, and echoes it back in the response header.
func RequestIDMiddleware(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if len(requestID) == 0 {
			requestID = uuid.NewString()
		}

		w.Header().Set(Header, requestID)

		ctx := context.WithValue(r.Context(), RequestIDCtxKey{}, requestID)
		h.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

func FromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDCtxKey{}).(string)

	return requestID
}
