package main

import (
	"strings"
	"time"

	gohttp "github.com/km-arc/go-nestforge/framework/http"
	"github.com/km-arc/go-nestforge/framework/pipeline"
)

// AllowAllGuard lets every request through.
type AllowAllGuard struct{}

func (AllowAllGuard) CanActivate(*pipeline.RequestContext) error { return nil }

// RequireValidIDGuard rejects paths carrying a zero id segment.
type RequireValidIDGuard struct{}

func (RequireValidIDGuard) CanActivate(rc *pipeline.RequestContext) error {
	if strings.HasSuffix(rc.Path, "/0") || strings.Contains(rc.Path, "/0/") {
		return gohttp.BadRequest("id must be greater than 0")
	}
	return nil
}

// LoggingInterceptor logs every request with its status and duration.
type LoggingInterceptor struct{}

func (LoggingInterceptor) Around(rc *pipeline.RequestContext, req *gohttp.Request, next *pipeline.Next) *gohttp.Response {
	started := time.Now()
	resp := next.Run(req)
	rc.Logger().Info("request handled",
		"method", rc.Method,
		"uri", rc.URI,
		"status", resp.Status,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return resp
}
