// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return content
}

func expectedLegacyHighlight() Dependency {
	return Dependency{
		Version:   "7.18.6",
		Resolved:  "https://registry.npmjs.org/@babel/highlight/-/highlight-7.18.6.tgz",
		Integrity: "sha512-u7stbOuYjaPezCuLj29hNW1v64M2Md2qupEKP1fHc7WdOA3DgLh37suiSrZYY7haUB7iBeQZ9P1uiRF359do3g==",
		Dev:       true,
		Requires: map[string]string{
			"js-tokens":                          "^4.0.0",
			"chalk":                              "^2.0.0",
			"@babel/helper-validator-identifier": "^7.18.6",
		},
		Dependencies: map[string]Dependency{
			"js-tokens": {
				Version:   "4.0.0",
				Resolved:  "https://registry.npmjs.org/js-tokens/-/js-tokens-4.0.0.tgz",
				Integrity: "sha512-RdJUflcE3cUzKiMqQgsCu06FPu9UdIJO0beYbPhHN4k6apgJtifcoCtT9bcxOpYBtpD2kCM6Sbzg4CausW/PKQ==",
				Dev:       true,
			},
		},
	}
}

func expectedPackageHighlight() Package {
	return Package{
		Version:   "7.18.6",
		Resolved:  "https://registry.npmjs.org/@babel/highlight/-/highlight-7.18.6.tgz",
		Integrity: "sha512-u7stbOuYjaPezCuLj29hNW1v64M2Md2qupEKP1fHc7WdOA3DgLh37suiSrZYY7haUB7iBeQZ9P1uiRF359do3g==",
		Dev:       true,
		Dependencies: map[string]string{
			"js-tokens":                          "^4.0.0",
			"chalk":                              "^2.0.0",
			"@babel/helper-validator-identifier": "^7.18.6",
		},
		Engines: map[string]string{"node": ">=6.9.0"},
	}
}

func TestParseV1(t *testing.T) {
	lock, err := Parse(readFixture(t, "testdata/v1/package-lock.json"))
	require.NoError(t, err)
	require.Equal(t, "cxtl", lock.Name)
	require.Equal(t, "1.0.0", lock.Version)
	require.Equal(t, 1, lock.LockfileVersion)
	require.True(t, lock.Requires)

	require.NotNil(t, lock.Dependencies)
	require.Nil(t, lock.Packages)
	require.Len(t, lock.Dependencies, 14)

	highlight, ok := lock.Dependency("@babel/highlight")
	require.True(t, ok)
	require.Equal(t, expectedLegacyHighlight(), highlight)

	fsevents, ok := lock.Dependency("fsevents")
	require.True(t, ok)
	require.True(t, fsevents.Dev)
	require.True(t, fsevents.Optional)
}

func TestParseV2(t *testing.T) {
	lock, err := Parse(readFixture(t, "testdata/v2/package-lock.json"))
	require.NoError(t, err)
	require.Equal(t, "cxtl", lock.Name)
	require.Equal(t, "1.0.0", lock.Version)
	require.Equal(t, 2, lock.LockfileVersion)

	require.NotNil(t, lock.Dependencies)
	require.NotNil(t, lock.Packages)

	highlight, ok := lock.Dependency("@babel/highlight")
	require.True(t, ok)
	require.Equal(t, expectedLegacyHighlight(), highlight)

	pkg, ok := lock.Package("@babel/highlight")
	require.True(t, ok)
	require.Equal(t, expectedPackageHighlight(), pkg)

	// both views describe the same top-level set
	require.Len(t, lock.Packages, len(lock.Dependencies))
	for name := range lock.Dependencies {
		require.Contains(t, lock.Packages, name)
	}
}

func TestParseV3(t *testing.T) {
	lock, err := Parse(readFixture(t, "testdata/v3/package-lock.json"))
	require.NoError(t, err)
	require.Equal(t, "cxtl", lock.Name)
	require.Equal(t, "1.0.0", lock.Version)
	require.Equal(t, 3, lock.LockfileVersion)

	require.Nil(t, lock.Dependencies)
	require.NotNil(t, lock.Packages)
	require.Len(t, lock.Packages, 14)

	pkg, ok := lock.Package("@babel/highlight")
	require.True(t, ok)
	require.Equal(t, expectedPackageHighlight(), pkg)

	// written as an array in the fixture
	require.Equal(t, map[string]string{"node": ">=0.6.0"}, lock.Packages["extsprintf"].Engines)

	fsevents := lock.Packages["fsevents"]
	require.True(t, fsevents.HasInstallScript)
	require.True(t, fsevents.Optional)

	// the top-level install wins over the one nested below @babel/highlight
	require.Equal(t, "3.0.2", lock.Packages["js-tokens"].Version)

	_, ok = lock.Package("")
	require.False(t, ok)
}

func TestParseWorkspace(t *testing.T) {
	lock, err := Parse(readFixture(t, "testdata/workspace/package-lock.json"))
	require.NoError(t, err)
	require.Equal(t, "monorepo", lock.Name)

	require.Len(t, lock.Packages, 5)
	require.Equal(t, "1.0.0", lock.Packages["base"].Version)
	require.Equal(t, "ISC", lock.Packages["base"].License)
	require.Equal(t, "2.0.0", lock.Packages["@mono/app"].Version)
	require.Equal(t, "4.17.21", lock.Packages["lodash"].Version)
	require.Equal(t, "0.0.1", lock.Packages["tools/scripts"].Version)
	require.Equal(t, "use String.prototype.padStart()", lock.Packages["packages/app/node_modules/left-pad"].Deprecated)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
		missing bool
	}{
		{"invalid json", `{"name": "cxtl",`, false},
		{"not an object", `["cxtl"]`, false},
		{"missing name", `{"version": "1.0.0", "lockfileVersion": 3, "packages": {}}`, true},
		{"missing lockfileVersion", `{"name": "cxtl", "version": "1.0.0", "packages": {}}`, true},
		{"lockfileVersion as string", `{"name": "cxtl", "lockfileVersion": "3"}`, false},
		{"name as number", `{"name": 1, "lockfileVersion": 3}`, false},
		{"packages as array", `{"name": "cxtl", "lockfileVersion": 3, "packages": []}`, false},
		{"malformed legacy tree", `{"name": "cxtl", "lockfileVersion": 1, "dependencies": {"a": {"dev": "yes"}}}`, false},
		{"invalid utf-8", "{\"name\": \"cx\xfftl\", \"lockfileVersion\": 3}", false},
	} {
		lock, err := Parse([]byte(tc.content))
		require.Error(t, err, tc.name)
		require.Nil(t, lock, tc.name)

		var perr *ParseError
		require.True(t, errors.As(err, &perr), tc.name)
		require.Equal(t, tc.missing, errors.Is(err, ErrMissingField), tc.name)
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	content := []byte("{\"name\": \"cxtl\", \"lockfileVersion\": 3, \"packages\": {\"node_modules/a\": {\"version\": \"1.0.0\", \"license\": \"M\xc3IT\"}}}")
	_, err := Parse(content)
	require.ErrorIs(t, err, errInvalidUTF8)

	var lock PackageLock
	require.ErrorIs(t, json.Unmarshal(content, &lock), errInvalidUTF8)
}

func TestParseOptionalRootVersion(t *testing.T) {
	lock, err := Parse([]byte(`{"name": "workspace-root", "lockfileVersion": 3, "packages": {"node_modules/a": {"version": "1.0.0"}}}`))
	require.NoError(t, err)
	require.Equal(t, "", lock.Version)
	require.Len(t, lock.Packages, 1)
}

func TestParseEmptyLockfile(t *testing.T) {
	lock, err := Parse([]byte(`{"name": "empty", "lockfileVersion": 3, "packages": {"": {"name": "empty"}}}`))
	require.NoError(t, err)
	require.NotNil(t, lock.Packages)
	require.Empty(t, lock.Packages)
	require.Empty(t, lock.SimpleDependencies())
}

func TestUnmarshalJSONMatchesParse(t *testing.T) {
	for _, fixture := range []string{
		"testdata/v1/package-lock.json",
		"testdata/v2/package-lock.json",
		"testdata/v3/package-lock.json",
		"testdata/workspace/package-lock.json",
	} {
		content := readFixture(t, fixture)
		parsed, err := Parse(content)
		require.NoError(t, err)

		var decoded PackageLock
		require.NoError(t, json.Unmarshal(content, &decoded), fixture)
		require.Equal(t, *parsed, decoded, fixture)
	}
}

func TestParseDependencies(t *testing.T) {
	deps, err := ParseDependencies(readFixture(t, "testdata/v1/package-lock.json"))
	require.NoError(t, err)
	require.Len(t, deps, 14)

	first := deps[0]
	require.Equal(t, "@babel/code-frame", first.Name)
	require.Equal(t, "7.18.6", first.Version)
	require.True(t, first.Dev)
	require.False(t, first.Optional)

	_, err = ParseDependencies([]byte(`{`))
	require.Error(t, err)
}
