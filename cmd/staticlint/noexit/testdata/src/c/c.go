package main

import (
	stdlog "log"
	o "os"
)

type exiter struct{}

func (exiter) Exit(code int) {}

func main() {
	os := exiter{}
	os.Exit(3) // a local value named os is not the os package

	o.Exit(1)             // want "avoid using os.Exit in main.main"
	stdlog.Fatalf("x %d", 1) // want "avoid using log.Fatalf in main.main"
}
