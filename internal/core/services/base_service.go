package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock    func() time.Time
	location *time.Location
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithLocation sets the time zone in which calendar days are evaluated.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		s.location = loc
	}
}

func newBaseService(opts ...ServiceOption) BaseService {
	b := BaseService{clock: time.Now, location: time.UTC}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time in the configured location.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now().In(s.loc())
	}
	return s.clock().In(s.loc())
}

// Today returns the current calendar day of the configured location as a UTC midnight,
// the representation used for every stored date.
func (s *BaseService) Today() time.Time {
	return s.CalendarDay(s.Now())
}

// CalendarDay maps t to its calendar day in the configured location, as a UTC midnight.
func (s *BaseService) CalendarDay(t time.Time) time.Time {
	y, m, d := t.In(s.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf keeps the calendar date written in t's own offset, as a UTC midnight.
// User-supplied dates go through here so "2025-03-10" never shifts a day.
func (s *BaseService) DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Location returns the zone used for calendar days.
func (s *BaseService) Location() *time.Location {
	return s.loc()
}

func (s *BaseService) loc() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a recoverable problem, such as a fallback being used
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
