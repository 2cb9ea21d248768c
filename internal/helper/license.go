// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"errors"
	"fmt"

	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
)

// minConfidence is the lowest detector confidence accepted as a match.
const minConfidence = 0.85

var errNoLicense = errors.New("no license found")

// License is the best license match for a directory.
type License struct {
	ID         string
	Confidence float32
}

// GetLicenses detects the license of the project in path from its
// LICENSE/COPYING/README files.
func GetLicenses(path string) (*License, error) {
	f, err := filer.FromDirectory(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	matches, err := licensedb.Detect(f)
	if err != nil {
		if errors.Is(err, licensedb.ErrNoLicenseFound) {
			return nil, errNoLicense
		}
		return nil, fmt.Errorf("detecting license: %w", err)
	}

	best := &License{}
	for id, match := range matches {
		if match.Confidence > best.Confidence || (match.Confidence == best.Confidence && id < best.ID) {
			best = &License{ID: id, Confidence: match.Confidence}
		}
	}
	if best.ID == "" || best.Confidence < minConfidence {
		return nil, errNoLicense
	}
	return best, nil
}

// BuildLicenseDeclared returns the SPDX expression for a detected license id.
func BuildLicenseDeclared(id string) string {
	if id == "" {
		return "NOASSERTION"
	}
	return id
}
