package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

// Sentinels for errors.Is checks. They match any StarError with the same code.
var (
	ErrInvalidConfig      = &StarError{Code: "E220"}
	ErrInvalidName        = &StarError{Code: "E240"}
	ErrAlreadyInitialized = &StarError{Code: "E241"}
	ErrBuildFailed        = &StarError{Code: "E242"}
	ErrNotFound           = &StarError{Code: "E243"}
	ErrRegistry           = &StarError{Code: "E244"}
	ErrCycle              = &StarError{Code: "E245"}
	ErrConflictDeclined   = &StarError{Code: "E246"}
	ErrPackageInstall     = &StarError{Code: "E247"}
	ErrInvalidManifest    = &StarError{Code: "E248"}
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E220-E239)
	// ============================================

	"E220": {
		Category: CategoryConfig,
		Message:  "Invalid starui.yaml",
		DocURL:   "https://starui.dev/docs/errors/E220",
	},
	"E221": {
		Category: CategoryConfig,
		Message:  "Invalid CSS output path",
		DocURL:   "https://starui.dev/docs/errors/E221",
	},
	"E222": {
		Category: CategoryConfig,
		Message:  "Project root not found",
		DocURL:   "https://starui.dev/docs/errors/E222",
	},

	// ============================================
	// CLI and Registry Errors (E240-E259)
	// ============================================

	"E240": {
		Category: CategoryValidation,
		Message:  "Invalid component names",
		DocURL:   "https://starui.dev/docs/errors/E240",
	},
	"E241": {
		Category: CategoryCLI,
		Message:  "Project already initialized",
		DocURL:   "https://starui.dev/docs/errors/E241",
	},
	"E242": {
		Category: CategoryBuild,
		Message:  "Build failed",
		DocURL:   "https://starui.dev/docs/errors/E242",
	},
	"E243": {
		Category: CategoryRegistry,
		Message:  "Component not found",
		DocURL:   "https://starui.dev/docs/errors/E243",
	},
	"E244": {
		Category: CategoryRegistry,
		Message:  "Registry unavailable",
		DocURL:   "https://starui.dev/docs/errors/E244",
	},
	"E245": {
		Category: CategoryRegistry,
		Message:  "Dependency cycle detected",
		DocURL:   "https://starui.dev/docs/errors/E245",
	},
	"E246": {
		Category: CategoryCLI,
		Message:  "Installation cancelled",
		DocURL:   "https://starui.dev/docs/errors/E246",
	},
	"E247": {
		Category: CategoryCLI,
		Message:  "Package installation failed",
		DocURL:   "https://starui.dev/docs/errors/E247",
	},
	"E248": {
		Category: CategoryRegistry,
		Message:  "Invalid registry manifest",
		DocURL:   "https://starui.dev/docs/errors/E248",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
