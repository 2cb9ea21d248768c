// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"sigs.k8s.io/release-utils/command"

	"github.com/opensbom-generator/npmlock/internal/helper"
	"github.com/opensbom-generator/npmlock/meta"
	"github.com/opensbom-generator/npmlock/plugin"
)

const (
	Cmd        = "npm"
	VersionArg = "--version"
)

var _ plugin.Plugin = (*NPM)(nil)

// NPM is the plugin reading npm lockfiles.
type NPM struct {
	metadata   plugin.Metadata
	rootModule *meta.Package
	parser     *Parser
}

// New creates a new npm instance
func New(opts ...Option) *NPM {
	return &NPM{
		metadata: plugin.Metadata{
			Name:       "Node Package Manager",
			Slug:       "npm",
			Manifest:   manifests,
			ModulePath: []string{"node_modules"},
		},
		parser: NewParser(opts...),
	}
}

// GetMetadata returns metadata descriptions Name, Slug, Manifest, ModulePath
func (m *NPM) GetMetadata() plugin.Metadata {
	return m.metadata
}

// IsValid checks whether path holds one of the known lockfiles.
func (m *NPM) IsValid(path string) bool {
	return DetectManifest(path) != ""
}

// HasModulesInstalled checks that node_modules exists in path.
func (m *NPM) HasModulesInstalled(path string) error {
	for _, p := range m.metadata.ModulePath {
		if helper.Exists(filepath.Join(path, p)) {
			return nil
		}
	}
	return errDependenciesNotFound
}

// GetVersion returns the version of the npm binary in PATH.
func (m *NPM) GetVersion() (string, error) {
	output, err := command.New(Cmd, VersionArg).RunSilentSuccessOutput()
	if err != nil {
		return "", err
	}
	return toolVersion(output.OutputTrimNL())
}

// toolVersion normalizes the version printed by npm. Anything that is not
// a semantic version means the binary is not npm or is broken.
func toolVersion(out string) (string, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(out, "v"))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", errInvalidToolVersion, out, err)
	}
	return v.String(), nil
}

// SetRootModule ...
func (m *NPM) SetRootModule(path string) error {
	lock, err := m.parser.ParseDir(path)
	if err != nil {
		return err
	}
	m.rootModule = m.rootPackage(lock, path)
	return nil
}

// GetRootModule return
// root package information ex. Name, Version
func (m *NPM) GetRootModule(path string) (*meta.Package, error) {
	if err := m.SetRootModule(path); err != nil {
		return nil, err
	}
	return m.rootModule, nil
}

// ListUsedModules returns the root package followed by the top-level
// dependencies of the lockfile with their name and version.
func (m *NPM) ListUsedModules(path string) ([]meta.Package, error) {
	lock, err := m.parser.ParseDir(path)
	if err != nil {
		return nil, err
	}
	m.rootModule = m.rootPackage(lock, path)

	collection := []meta.Package{*m.rootModule}
	for _, d := range lock.SimpleDependencies() {
		collection = append(collection, meta.Package{
			Name:       d.Name,
			Version:    d.Version,
			PackageURL: PackageURL(d.Name, d.Version),
		})
	}
	return collection, nil
}

// ListModulesWithDeps returns the root package with its dependencies
// attached, followed by every top-level dependency with checksum,
// download location and license.
func (m *NPM) ListModulesWithDeps(path string, globalSettingFile string) ([]meta.Package, error) {
	lock, err := m.parser.ParseDir(path)
	if err != nil {
		return nil, err
	}
	root, err := lock.ToMeta()
	if err != nil {
		return nil, err
	}
	m.applyRootLicense(root, path)
	m.rootModule = root

	names := make([]string, 0, len(root.Packages))
	for name := range root.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	modules := []meta.Package{*root}
	for _, name := range names {
		modules = append(modules, *root.Packages[name])
	}
	return modules, nil
}

func (m *NPM) rootPackage(lock *PackageLock, path string) *meta.Package {
	root := RootToMeta(lock)
	m.applyRootLicense(root, path)
	return root
}

// applyRootLicense fills the root license from the project files; the
// lockfile drops the root entry that would carry it.
func (m *NPM) applyRootLicense(root *meta.Package, path string) {
	lic, err := helper.GetLicenses(path)
	if err != nil {
		m.parser.log.WithField("path", path).Debugf("No license detected: %v", err)
		return
	}
	root.LicenseDeclared = helper.BuildLicenseDeclared(lic.ID)
	root.LicenseConcluded = root.LicenseDeclared
	m.parser.log.WithField("path", path).Debugf("Detected %s license (%.2f)", lic.ID, lic.Confidence)
}
