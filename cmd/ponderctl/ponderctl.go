package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/kiosk404/ponder/internal/ponderctl/cmd"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/pkg/logger"
)

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Debug)); err != nil {
		logger.Warn("[ponderctl] failed to set GOMAXPROCS: %v", err)
	}

	command := cmd.NewDefaultPonderCtlCommand()
	if err := command.Execute(); err != nil {
		util.CheckErr(err)
		os.Exit(1)
	}
}
