// Command hello is a small NestForge application: a users and settings API
// built from modules, with a global prefix, a global guard and a logging
// interceptor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-nestforge/framework/app"
	"github.com/km-arc/go-nestforge/framework/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := bootstrap(app.WithConfig(config.Load()))
	if err != nil {
		return err
	}
	return application.Listen(ctx, "")
}

// bootstrap creates the application with its global pipeline.
func bootstrap(opts ...app.Option) (*app.Application, error) {
	base := []app.Option{
		app.WithGlobalPrefix("api"),
		app.UseGuards(AllowAllGuard{}),
		app.UseInterceptors(LoggingInterceptor{}),
	}
	return app.Create(AppModule{}, append(base, opts...)...)
}
