// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"sort"
	"strings"
)

// localReferencePrefix marks legacy versions that point at a directory
// of the project instead of a published release.
const localReferencePrefix = "file:"

// reconcileVersions replaces "file:" versions of top-level legacy
// dependencies with the version recorded for the same name in the
// packages map. Placeholders without a matching package are left as is.
func (p *Parser) reconcileVersions(lock *PackageLock) {
	if lock.Dependencies == nil || lock.Packages == nil {
		return
	}
	for name, dep := range lock.Dependencies {
		if !isLocalReference(dep.Version) {
			continue
		}
		pkg, ok := lock.Packages[name]
		if !ok {
			p.log.WithField("key", name).Debugf("No package found for %s", dep.Version)
			continue
		}
		dep.Version = pkg.Version
		lock.Dependencies[name] = dep
	}
}

// UnresolvedLocalReferences lists the top-level legacy dependencies
// whose version is still a "file:" reference.
func (l *PackageLock) UnresolvedLocalReferences() []string {
	var names []string
	for name, dep := range l.Dependencies {
		if isLocalReference(dep.Version) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func isLocalReference(version string) bool {
	return strings.HasPrefix(version, localReferencePrefix)
}
