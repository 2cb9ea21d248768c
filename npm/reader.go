// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opensbom-generator/npmlock/internal/helper"
)

// List of known lockfiles in order of priority. npm itself prefers a
// shrinkwrap over package-lock.json; the hidden lockfile inside
// node_modules is only written by npm 7 and later.
var manifests = []string{
	"npm-shrinkwrap.json",
	"package-lock.json",
	"node_modules/.package-lock.json",
}

// DetectManifest returns the path of the lockfile found in the
// directory path, or an empty string when there is none.
func DetectManifest(path string) string {
	for i := range manifests {
		fullPath := filepath.Join(path, manifests[i])
		if helper.Exists(fullPath) {
			return fullPath
		}
	}
	return ""
}

// ParseFile reads and parses the lockfile at path.
func ParseFile(path string) (*PackageLock, error) {
	return NewParser().ParseFile(path)
}

// ParseFile reads and parses the lockfile at path.
func (p *Parser) ParseFile(path string) (*PackageLock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lockfile: %w", err)
	}
	lock, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.log.WithField("lockfileVersion", lock.LockfileVersion).Debugf(
		"Parsed %s: %d dependencies, %d packages", path, len(lock.Dependencies), len(lock.Packages),
	)
	return lock, nil
}

// ParseDir detects and parses the lockfile of the project in path.
func (p *Parser) ParseDir(path string) (*PackageLock, error) {
	manifest := DetectManifest(path)
	if manifest == "" {
		return nil, fmt.Errorf("%w in %s", errNoManifest, path)
	}
	return p.ParseFile(manifest)
}
