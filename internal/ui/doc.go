// Package ui provides terminal color themes for CLI output.
package ui
