package main

import (
	"context"
	"io"
	"os"

	docgrinder "github.com/alnah/go-docgrinder"
)

// runFunc matches docgrinder.Run.
type runFunc func(ctx context.Context, cfg docgrinder.RunConfig, opts ...docgrinder.Option) (*docgrinder.Report, error)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Run    runFunc
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Run:    docgrinder.Run,
	}
}
