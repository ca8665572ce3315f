package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time reports an operation's duration when the returned func runs, typically
// via defer. Pass a pointer to the named error return to log failures too.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		evt := log.Info()
		if errp != nil && *errp != nil {
			evt = log.Warn().Err(*errp)
		}
		evt.Str("req_id", reqID).Str("op", name).Dur("duration", time.Since(start)).Msg("Operation finished")
	}
}
