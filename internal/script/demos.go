package script

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed demos/*.yaml
var demoFS embed.FS

// Demos returns the names of the built-in demo scripts.
func Demos() []string {
	entries, _ := demoFS.ReadDir("demos")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

// Demo returns the built-in demo script for a topology.
func Demo(name string) (*Script, error) {
	data, err := demoFS.ReadFile(path.Join("demos", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("no demo %q (valid: %s)", name, strings.Join(Demos(), ", "))
	}
	return Parse(data)
}
