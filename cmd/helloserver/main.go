// Command helloserver serves a plain-text greeting at /hello and a fixed user
// record as JSON at /user.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/patric-chuzhbe/helloserver/internal/app"
	"github.com/patric-chuzhbe/helloserver/internal/config"
	"github.com/patric-chuzhbe/helloserver/internal/logger"
)

// Filled in with -ldflags "-X main.buildVersion=..." at build time.
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

// run owns every deferred cleanup, so it has returned before the process exits.
func run() error {
	theApp, err := app.New()
	if err != nil {
		return err
	}
	defer theApp.Close()

	err = theApp.Run()
	if err != nil {
		logger.Log.Errorln("server stopped with error:", err)
	}

	return err
}

func exitOnError(err error) {
	if err == nil || errors.Is(err, config.ErrHelpRequested) {
		return
	}

	fmt.Fprintln(os.Stderr, "helloserver:", err)
	os.Exit(1)
}

func main() {
	printBuildInfo()

	exitOnError(run())
}
