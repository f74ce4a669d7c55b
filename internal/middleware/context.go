package middleware

import (
	"context"
	"time"
)

func stdContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
