// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectManifest(t *testing.T) {
	path := DetectManifest("testdata/project/shrinkwrap")
	assert.Equal(t, path, "testdata/project/shrinkwrap/npm-shrinkwrap.json")
	path = DetectManifest("testdata/project/source")
	assert.Equal(t, path, "")
	path = DetectManifest("testdata/v1")
	assert.Equal(t, path, "testdata/v1/package-lock.json")
	path = DetectManifest("testdata/project/hidden")
	assert.Equal(t, path, "testdata/project/hidden/node_modules/.package-lock.json")
}

func TestParseFile(t *testing.T) {
	lock, err := ParseFile("testdata/project/shrinkwrap/npm-shrinkwrap.json")
	require.NoError(t, err)
	assert.Equal(t, "shrinkwrap", lock.Name)
	assert.Equal(t, "1.3.0", lock.Packages["left-pad"].Version)

	_, err = ParseFile("testdata/project/missing/package-lock.json")
	require.Error(t, err)

	// a package.json is not a lockfile
	_, err = ParseFile("testdata/project/source/package.json")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseDir(t *testing.T) {
	lock, err := NewParser().ParseDir("testdata/project/hidden")
	require.NoError(t, err)
	assert.Equal(t, "hidden", lock.Name)

	_, err = NewParser().ParseDir("testdata/project/source")
	require.ErrorIs(t, err, errNoManifest)
}
