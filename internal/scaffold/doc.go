// Package scaffold prepares a project for StarUI components.
//
// Each step is idempotent and can run on its own; Initializer runs them in
// order for `star init`:
//
//   - Validate refuses directories that already hold a StarUI setup
//   - SetupDirectories creates the component and stylesheet directories
//   - CreateCSSInput writes the Tailwind input stylesheet
//   - AddDefaultComponents installs utils and the theme toggle
//   - CreateApp writes a starter app.py
//   - UpdateGitignore appends the generated-files block
//   - CreateConfigFile writes starui.yaml
//
// # Template Variables
//
// Generated files are rendered with text/template:
//
//	{{.CSSHref}}          - URL path of the compiled stylesheet
//	{{.ComponentModule}}  - Python import path of the component directory
package scaffold
