package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// HeaderAPIKey carries the API key credential.
const HeaderAPIKey = "X-API-KEY"

// APIKey returns a Huma middleware that guards every operation whose security
// requirements name scheme. Requests without the configured key get 403.
func APIKey(api huma.API, scheme, key string, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresScheme(ctx.Operation(), scheme) {
			next(ctx)

			return
		}

		given := ctx.Header(HeaderAPIKey)
		if given == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			logger.Warn("rejected api key",
				zap.String("path", ctx.URL().Path),
				zap.Bool("present", given != ""),
			)

			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "invalid or missing api key")

			return
		}

		next(ctx)
	}
}

func requiresScheme(op *huma.Operation, scheme string) bool {
	if op == nil {
		return false
	}

	for _, requirement := range op.Security {
		if _, ok := requirement[scheme]; ok {
			return true
		}
	}

	return false
}
