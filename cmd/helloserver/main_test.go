package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patric-chuzhbe/helloserver/internal/config"
)

func TestExitOnErrorReturnsForCleanOutcomes(t *testing.T) {
	type tTestCase struct {
		name string
		err  error
	}
	testCases := []tTestCase{
		{name: "no_error", err: nil},
		{name: "help", err: config.ErrHelpRequested},
		{name: "wrapped_help", err: fmt.Errorf("unable to load config: %w", config.ErrHelpRequested)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				exitOnError(testCase.err)
			})
		})
	}
}
