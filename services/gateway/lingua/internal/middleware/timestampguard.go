package middleware

import (
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/pkg/authpayload"
)

const timestampHeader = "x-timestamp"

// TimestampGuardMiddleware rejects requests whose x-timestamp header falls
// outside the replay window, independent of the init-data payload's own
// auth_date check. OPTIONS preflight requests carry no application headers
// and bypass the check entirely.
func TimestampGuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next(w, r)
			return
		}

		header := r.Header.Get(timestampHeader)
		if header == "" {
			httpx.ErrorCtx(r.Context(), w, apierr.Forbidden("missing x-timestamp header"))
			return
		}
		if err := authpayload.CheckTimestamp(header, time.Now()); err != nil {
			httpx.ErrorCtx(r.Context(), w, apierr.Forbidden("request timestamp outside allowed window"))
			return
		}
		next(w, r)
	}
}
