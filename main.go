// Package main is the entry point for the rtps CLI.
package main

import (
	"os"

	"github.com/huangsam/rtps/cmd"
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/iocache"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseCaching()
	if err != nil {
		contract.LogFatal("rtps failed", err)
	}
	os.Exit(0)
}
