// Package main is the entry point for the onboard CLI.
package main

import (
	"github.com/huangsam/onboard/cmd"
	"github.com/huangsam/onboard/internal/benchstore"
	"github.com/huangsam/onboard/internal/contract"
)

func main() {
	cmd.SetStoreManager(benchstore.Manager)
	defer benchstore.CloseStores()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		benchstore.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
