// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import "sort"

// SimpleDependencies flattens the top-level entries of the lockfile into
// SimpleDependency records sorted by name and version. The legacy tree is
// used when present, otherwise the packages map. Both views describe the
// same dependencies, so they are never combined. Dependencies nested
// inside a legacy node are not listed.
func (l *PackageLock) SimpleDependencies() []SimpleDependency {
	var deps []SimpleDependency
	switch {
	case l.Dependencies != nil:
		deps = make([]SimpleDependency, 0, len(l.Dependencies))
		for name, d := range l.Dependencies {
			deps = append(deps, SimpleDependency{
				Name:     name,
				Version:  d.Version,
				Dev:      d.Dev,
				Optional: d.Optional,
			})
		}
	case l.Packages != nil:
		deps = make([]SimpleDependency, 0, len(l.Packages))
		for name, p := range l.Packages {
			deps = append(deps, SimpleDependency{
				Name:     name,
				Version:  p.Version,
				Dev:      p.Dev,
				Optional: p.Optional,
			})
		}
	default:
		return []SimpleDependency{}
	}

	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Name != deps[j].Name {
			return deps[i].Name < deps[j].Name
		}
		return deps[i].Version < deps[j].Version
	})
	return deps
}
