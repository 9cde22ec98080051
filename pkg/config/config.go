// Package config carries the per-invocation compiler settings: target,
// backend selection and warning toggles.
package config

import (
	"fmt"
	"strings"

	"modernc.org/libqbe"
)

type Warning int

const (
	WarnUnreachableCode Warning = iota
	WarnExtra
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	GOOS           string
	GOARCH         string
	BackendName    string
	QbeTarget      string
	WordSize       int
	WordType       string
	StackAlignment int
	Warnings       map[Warning]Info
	WarningMap     map[string]Warning
}

func NewConfig() *Config {
	cfg := &Config{
		BackendName: "qbe",
		Warnings:    make(map[Warning]Info),
		WarningMap:  make(map[string]Warning),
	}

	warnings := map[Warning]Info{
		WarnUnreachableCode: {"unreachable-code", true, "Warn about statements that follow a return in the same block."},
		WarnExtra:           {"extra", false, "Enable extra miscellaneous warnings."},
	}

	cfg.Warnings = warnings
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}
	return cfg
}

// SetTarget configures the compiler for a specific OS, architecture and
// QBE target ABI. An empty qbeTarget selects the host default.
func (c *Config) SetTarget(goos, goarch, qbeTarget string) {
	if qbeTarget == "" {
		qbeTarget = libqbe.DefaultTarget(goos, goarch)
	}
	c.GOOS, c.GOARCH, c.QbeTarget = goos, goarch, qbeTarget

	switch c.QbeTarget {
	case "amd64_sysv", "amd64_apple", "arm64", "arm64_apple", "rv64":
		c.WordSize, c.WordType, c.StackAlignment = 8, "l", 16
	case "arm", "rv32":
		c.WordSize, c.WordType, c.StackAlignment = 4, "w", 8
	default:
		c.WordSize, c.WordType, c.StackAlignment = 8, "l", 16
	}
}

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// ApplyFlag applies one -W style toggle: "name", "no-name", "all" or
// "no-all".
func (c *Config) ApplyFlag(flag string) error {
	name := flag
	enable := true
	if strings.HasPrefix(name, "no-") {
		name = strings.TrimPrefix(name, "no-")
		enable = false
	}

	if name == "all" {
		for i := Warning(0); i < WarnCount; i++ {
			c.SetWarning(i, enable)
		}
		return nil
	}

	wt, ok := c.WarningMap[name]
	if !ok {
		return fmt.Errorf("unknown warning '%s'", name)
	}
	c.SetWarning(wt, enable)
	return nil
}

// UnderscorePrefix reports whether global symbols on the selected target
// carry a leading underscore.
func (c *Config) UnderscorePrefix() bool {
	return c.GOOS == "darwin" ||
		c.QbeTarget == "amd64_apple" || c.QbeTarget == "arm64_apple"
}
