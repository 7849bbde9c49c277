package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action behind a spinner titled title.
// When stdout is not a terminal the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	var actionErr error
	err := spinner.New().
		Context(ctx).
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return actionErr
}
