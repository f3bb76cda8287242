// Package main is the entry point for the pluribus CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pluribus-dev/pluribus/internal/app"
	"github.com/pluribus-dev/pluribus/internal/cli"
	"github.com/pluribus-dev/pluribus/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd)
	if err != nil {
		// Allow init/help/version to run outside a workspace
		if errors.Is(err, domain.ErrNotInitialized) {
			return runWithoutContainer(err)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer handles invocations outside an initialized
// workspace. Only init, help and version make sense there; everything
// else reports the workspace error.
func runWithoutContainer(workspaceErr error) error {
	if canRunUninitialized(os.Args[1:]) {
		rootCmd := cli.NewRootCommand(nil, version)
		return rootCmd.Execute()
	}
	return workspaceErr
}

func canRunUninitialized(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "init", "help", "completion":
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
