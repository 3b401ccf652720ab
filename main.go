package main

import (
	"context"

	"github.com/taskforge/apiserver/internal/bootstrap"
	"github.com/taskforge/apiserver/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "failed to initialize application: %v", err)
		panic(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "application failed: %v", err)
		panic(err)
	}
}
