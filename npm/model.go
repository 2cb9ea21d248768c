// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2022, Oracle and/or its affiliates.

package npm

// PackageLock represents an npm lockfile of any supported
// lockfileVersion. Version 1 files only carry Dependencies, version 3
// files only carry Packages and version 2 files carry both views of the
// same dependency set.
type PackageLock struct {
	Name            string `json:"name"`
	Version         string `json:"version,omitempty"`
	LockfileVersion int    `json:"lockfileVersion"`
	Requires        bool   `json:"requires,omitempty"`

	// Dependencies is the legacy install tree, keyed by package name.
	Dependencies map[string]Dependency `json:"dependencies,omitempty"`

	// Packages is the flat package map, keyed by package name once the
	// install path prefix has been removed. Nested installs are not kept.
	Packages map[string]Package `json:"packages,omitempty"`
}

// Dependency is a node of the legacy (lockfileVersion 1 and 2)
// dependency tree. Its Dependencies mirror the nested node_modules
// directories of the install.
type Dependency struct {
	Version      string                `json:"version"`
	Resolved     string                `json:"resolved,omitempty"`
	Integrity    string                `json:"integrity,omitempty"`
	Bundled      bool                  `json:"bundled,omitempty"`
	Dev          bool                  `json:"dev,omitempty"`
	Optional     bool                  `json:"optional,omitempty"`
	Requires     map[string]string     `json:"requires,omitempty"`
	Dependencies map[string]Dependency `json:"dependencies,omitempty"`
}

// Package is an entry of the flat packages map used by lockfileVersion 2
// and 3.
type Package struct {
	// Name is only set for entries whose key is not the package name,
	// workspace members and aliased installs.
	Name       string `json:"name,omitempty"`
	Version    string `json:"version"`
	Resolved   string `json:"resolved,omitempty"`
	Integrity  string `json:"integrity,omitempty"`
	License    string `json:"license,omitempty"`
	Deprecated string `json:"deprecated,omitempty"`

	Bundled          bool `json:"bundled,omitempty"`
	Dev              bool `json:"dev,omitempty"`
	Optional         bool `json:"optional,omitempty"`
	DevOptional      bool `json:"devOptional,omitempty"`
	InBundle         bool `json:"inBundle,omitempty"`
	HasInstallScript bool `json:"hasInstallScript,omitempty"`
	HasShrinkwrap    bool `json:"hasShrinkwrap,omitempty"`
	Peer             bool `json:"peer,omitempty"`
	Extraneous       bool `json:"extraneous,omitempty"`
	Link             bool `json:"link,omitempty"`

	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	Engines              map[string]string `json:"engines,omitempty"`
	Bin                  map[string]string `json:"bin,omitempty"`
}

// SimpleDependency is the reduced view returned by ParseDependencies.
type SimpleDependency struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Dev      bool   `json:"dev"`
	Optional bool   `json:"optional"`
}

// Dependency returns the top-level legacy tree entry for name.
func (l *PackageLock) Dependency(name string) (Dependency, bool) {
	d, ok := l.Dependencies[name]
	return d, ok
}

// Package returns the flat map entry for name.
func (l *PackageLock) Package(name string) (Package, bool) {
	p, ok := l.Packages[name]
	return p, ok
}
