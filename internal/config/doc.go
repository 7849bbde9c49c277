// Package config provides project configuration for star.
//
// Configuration is optional. When present it is stored in starui.yaml at
// the project root:
//
//	css_output: static/css/starui.css
//	component_dir: components/ui
//	registry: https://ui.example.com/registry
//	tailwind:
//	  version: v4.1.4
//	  binary: /usr/local/bin/tailwindcss
//
// Every key can be overridden from the environment with the STARUI_ prefix,
// for example STARUI_CSS_OUTPUT or STARUI_TAILWIND_VERSION.
//
// # Project Root
//
// The root is the nearest directory, walking up from the working
// directory, that contains starui.yaml or pyproject.toml. If neither is
// found the working directory itself is used.
//
// # Usage
//
//	cfg, err := config.LoadFromDir("")
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println("Components:", cfg.ComponentDirPath())
package config
