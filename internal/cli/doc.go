// Package cli defines the cobra command tree: setup, cleanup, upgrade,
// agents, doctor, status, config, and version.
package cli
