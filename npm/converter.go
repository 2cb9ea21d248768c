// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/opensbom-generator/npmlock/meta"
)

// ParseIntegrity takes the npm 'integrity' value and returns either a
// Checksum object or an error. When the value lists several hashes the
// first one is used.
func ParseIntegrity(i string) (*meta.Checksum, error) {
	// NPM's specification follows https://w3c.github.io/webappsec-subresource-integrity/
	fields := strings.Fields(i)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", errInvalidIntegrity)
	}
	algoType, digest, found := strings.Cut(fields[0], "-")
	if !found {
		return nil, fmt.Errorf("%w: %q", errInvalidIntegrity, i)
	}
	// drop SRI options, "sha512-<digest>?opt"
	digest, _, _ = strings.Cut(digest, "?")

	// the hash value is base64 encoded, hence we have to decode it
	algoValByte, err := base64.StdEncoding.DecodeString(digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidIntegrity, err)
	}
	return &meta.Checksum{
		Algorithm: meta.GetHashAlgorithm(algoType),
		Content:   algoValByte,
		Value:     fmt.Sprintf("%x", algoValByte),
	}, nil
}

// PackageURL builds the purl of an npm package, pkg:npm/%40scope/name@version.
func PackageURL(name, version string) string {
	purl := "pkg:npm/" + strings.Replace(name, "@", "%40", 1)
	if version != "" {
		purl += "@" + url.PathEscape(version)
	}
	return purl
}

// PackageToMeta takes a package name and Package object from the
// packages map and returns a meta Package object.
func PackageToMeta(name string, p Package) (*meta.Package, error) {
	m := meta.Package{
		Version:                 p.Version,
		Name:                    name,
		Supplier:                meta.Supplier{}, //NPM lock files don't have a supplier
		PackageURL:              PackageURL(name, p.Version),
		PackageDownloadLocation: p.Resolved,
		LicenseDeclared:         p.License,
		PackageComment:          p.Deprecated,
		Packages:                map[string]*meta.Package{},
	}
	if p.Integrity != "" {
		cs, err := ParseIntegrity(p.Integrity)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", name, err)
		}
		m.Checksum = *cs
	}
	return &m, nil
}

// DependencyToMeta converts a legacy tree node and, recursively, the
// dependencies nested below it.
func DependencyToMeta(name string, d Dependency) (*meta.Package, error) {
	m := meta.Package{
		Version:                 d.Version,
		Name:                    name,
		PackageURL:              PackageURL(name, d.Version),
		PackageDownloadLocation: d.Resolved,
		Packages:                map[string]*meta.Package{},
	}
	if d.Integrity != "" {
		cs, err := ParseIntegrity(d.Integrity)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", name, err)
		}
		m.Checksum = *cs
	}
	for childName, child := range d.Dependencies {
		c, err := DependencyToMeta(childName, child)
		if err != nil {
			return nil, err
		}
		m.Packages[childName] = c
	}
	return &m, nil
}

// RootToMeta returns the meta Package describing the project that owns
// the lockfile, without its dependencies.
func RootToMeta(l *PackageLock) *meta.Package {
	return &meta.Package{
		Version:    l.Version,
		Name:       l.Name,
		PackageURL: PackageURL(l.Name, l.Version),
		// npm root package does not have a checksum
		// so we will calculate a SHA512
		Checksum: meta.Checksum{
			Algorithm: meta.HashAlgoSHA512,
			Content:   []byte(l.Name + "-" + l.Version),
		},
		Root:     true,
		Packages: map[string]*meta.Package{},
	}
}

// ToMeta returns the root package with every top-level dependency
// attached. The packages map is preferred because it carries licenses;
// lockfileVersion 1 files fall back to the legacy tree.
func (l *PackageLock) ToMeta() (*meta.Package, error) {
	root := RootToMeta(l)
	if l.Packages != nil {
		for name, p := range l.Packages {
			m, err := PackageToMeta(name, p)
			if err != nil {
				return nil, err
			}
			root.Packages[name] = m
		}
		return root, nil
	}
	for name, d := range l.Dependencies {
		m, err := DependencyToMeta(name, d)
		if err != nil {
			return nil, err
		}
		root.Packages[name] = m
	}
	return root, nil
}
