package main

import (
	"os"

	"github.com/ether/etherdelta/lib/cli"
	"github.com/ether/etherdelta/lib/settings"
	"github.com/ether/etherdelta/lib/utils"
)

// @title etherdelta API
// @version 1.0
// @description Versioned static assets served in full or as deltas against a version the client already holds.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:9001
// @BasePath /
func main() {
	bootstrapLogger := utils.SetupLogger("info", false)
	if err := settings.InitSettings(bootstrapLogger); err != nil {
		bootstrapLogger.Fatal(err.Error())
	}

	setupLogger := utils.SetupLogger(settings.Displayed.LogLevel, settings.Displayed.LogJSON)
	defer setupLogger.Sync()
	settings.Displayed.GitVersion = settings.GitVersion()

	if err := cli.Execute(setupLogger, settings.Displayed); err != nil {
		setupLogger.Error(err.Error())
		os.Exit(1)
	}
}
