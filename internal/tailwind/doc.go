// Package tailwind compiles project stylesheets with the Tailwind CSS
// standalone binary.
//
// Binary locates the compiler, downloading the release for the current
// platform into ~/.starui/bin/<version>/ on first use, so projects need no
// Node.js toolchain. Builder runs it once, or in watch mode where every
// rewrite of the output file is reported as a BuildResult.
package tailwind
