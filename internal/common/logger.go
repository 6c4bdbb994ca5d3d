package common

//go:generate $MOCKGEN -source=logger.go -destination=mocks/logger_mock.go

import "context"

// Logger receives the informational messages emitted by Service.
type Logger interface {
	// Info logs a message at info level.
	Info(ctx context.Context, message string)
}
