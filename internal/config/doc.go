// Package config manages user-level settings stored at ~/.docforge/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default author name and default setup answers.
package config
