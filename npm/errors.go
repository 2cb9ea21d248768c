// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by a ParseError when the root object lacks
// one of the fields every lockfile carries (name, lockfileVersion).
var ErrMissingField = errors.New("missing required field")

var (
	errPackagesNotObject    = errors.New("packages is not a JSON object")
	errInvalidUTF8          = errors.New("lockfile is not valid UTF-8")
	errMissingVersion       = errors.New("package entry has no version")
	errInvalidIntegrity     = errors.New("invalid integrity value")
	errNoManifest           = errors.New("no npm lockfile found")
	errInvalidToolVersion   = errors.New("unexpected npm version")
	errDependenciesNotFound = errors.New("unable to generate SPDX file, no modules found. Please install them before running spdx-sbom-generator, e.g.: `npm install`")
)

// ParseError is returned when a lockfile cannot be decoded at all. Entries
// of the packages map that fail to decode never produce a ParseError; they
// are logged and dropped.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing package-lock.json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
