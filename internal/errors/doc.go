// Package errors provides structured, actionable error messages for star.
//
// Every fatal condition the CLI can hit has a registered code (e.g. "E243")
// that maps to a short message, a category and a documentation URL. Callers
// attach context with the With* builders and the CLI prints the result with
// Format, so users see one readable message and never a stack trace.
//
// # Error Categories
//
//   - config:     project configuration problems (starui.yaml, CSS paths)
//   - validation: malformed user input (component names)
//   - registry:   catalog lookups (unknown components, unavailable registry, cycles)
//   - build:      CSS compilation failures
//   - cli:        command-level aborts (declined prompts, dirty directories)
//
// # Usage
//
//	err := errors.New("E243").
//	    WithDetail("Component 'buton' not found in registry").
//	    WithSuggestion("Run 'star list' to see available components")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E243: Component not found
//	//
//	//   Component 'buton' not found in registry
//	//
//	//   Hint: Run 'star list' to see available components
//
// Codes double as sentinels: errors.Is(err, errors.ErrNotFound) matches any
// error carrying code E243, however deeply it is wrapped.
package errors
