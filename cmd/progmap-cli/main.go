package main

import (
	"context"
	"time"

	"progmap/cmd/progmap-cli/commands"
	"progmap/lib/telemetry"
	"progmap/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, _ := telemetry.SetupFromEnv(ctx, "progmap-cli")
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tel.Shutdown(shutdownCtx)
}
