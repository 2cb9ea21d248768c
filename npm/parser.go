// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Parser decodes npm lockfiles. The zero value is not usable, use
// NewParser. A Parser holds no state between calls and may be shared.
type Parser struct {
	log           logrus.FieldLogger
	installPrefix string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger diagnostics about dropped or repaired
// entries are written to. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithInstallPrefix overrides the "node_modules/" prefix used to
// recognize install locations in the packages map.
func WithInstallPrefix(prefix string) Option {
	return func(p *Parser) {
		if prefix != "" {
			p.installPrefix = prefix
		}
	}
}

// NewParser returns a Parser configured with opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		log:           logrus.StandardLogger(),
		installPrefix: DefaultInstallPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a package-lock.json of lockfileVersion 1, 2 or 3.
func Parse(data []byte) (*PackageLock, error) {
	return NewParser().Parse(data)
}

// ParseDependencies returns the top-level dependencies of a lockfile with
// only their name, version and dev/optional flags. Use Parse when more
// detail is needed.
func ParseDependencies(data []byte) ([]SimpleDependency, error) {
	return NewParser().ParseDependencies(data)
}

// Parse decodes data into a PackageLock and resolves the "file:"
// versions of the legacy tree against the packages map.
func (p *Parser) Parse(data []byte) (*PackageLock, error) {
	lock := &PackageLock{}
	if err := p.decode(data, lock); err != nil {
		return nil, &ParseError{Err: err}
	}
	return lock, nil
}

// ParseDependencies is Parse followed by SimpleDependencies.
func (p *Parser) ParseDependencies(data []byte) ([]SimpleDependency, error) {
	lock, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	return lock.SimpleDependencies(), nil
}

// UnmarshalJSON implements json.Unmarshaler so a PackageLock embedded in
// another document is normalized the same way Parse does it.
func (l *PackageLock) UnmarshalJSON(data []byte) error {
	return NewParser().decode(data, l)
}

// rawLock mirrors PackageLock with the packages map left undecoded and
// the required fields as pointers to detect their absence.
type rawLock struct {
	Name            *string               `json:"name"`
	Version         string                `json:"version"`
	LockfileVersion *int                  `json:"lockfileVersion"`
	Requires        bool                  `json:"requires"`
	Dependencies    map[string]Dependency `json:"dependencies"`
	Packages        json.RawMessage       `json:"packages"`
}

func (p *Parser) decode(data []byte, lock *PackageLock) error {
	// encoding/json would replace invalid bytes with U+FFFD
	if !utf8.Valid(data) {
		return errInvalidUTF8
	}

	var raw rawLock
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == nil {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if raw.LockfileVersion == nil {
		return fmt.Errorf("%w: lockfileVersion", ErrMissingField)
	}

	log := p.log.WithField("lockfileVersion", *raw.LockfileVersion)
	switch *raw.LockfileVersion {
	case 1, 2, 3:
	default:
		log.Warn("Unknown lockfileVersion, decoding it as version 3")
	}

	*lock = PackageLock{
		Name:            *raw.Name,
		Version:         raw.Version,
		LockfileVersion: *raw.LockfileVersion,
		Requires:        raw.Requires,
		Dependencies:    raw.Dependencies,
	}
	if len(raw.Packages) > 0 && !isNull(raw.Packages) {
		packages, err := p.normalizePackages(raw.Packages)
		if err != nil {
			return fmt.Errorf("decoding packages: %w", err)
		}
		lock.Packages = packages
	}
	if lock.Dependencies == nil && lock.Packages == nil {
		log.Warn("Lockfile has neither dependencies nor packages")
	}

	p.reconcileVersions(lock)
	return nil
}
