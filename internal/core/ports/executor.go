package ports

import "context"

// CommandRunner runs external processes and captures their standard output.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes name with args inside dir and returns its standard output.
	//
	// A process that starts but exits non-zero yields a *domain.ExitError carrying the
	// exit code and standard error. Any other failure means the process could not run.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}
