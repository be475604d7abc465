// main is the entry point for the scorebench CLI.
package main

import (
	"github.com/scorebench/scorebench/cmd"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/resultstore"
)

func main() {
	cmd.SetStoreManager(resultstore.Manager)

	err := cmd.Execute()

	// Flush shared resources before reporting the command outcome.
	resultstore.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
