package main

import (
	"wahis-scraper/cmd/wahis-cli/commands"
	"wahis-scraper/lib/osutil"
	"wahis-scraper/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "wahis-cli")
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
