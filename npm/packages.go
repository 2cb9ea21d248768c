// SPDX-License-Identifier: Apache-2.0
// Copyright 2023 The Linux Foundation and its contributors

package npm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultInstallPrefix is the path prefix of packages keys that point
	// at an install location rather than a workspace directory.
	DefaultInstallPrefix = "node_modules/"

	// engineNotFound replaces both halves of an engines array element that
	// cannot be split into "<engine> <constraint>".
	engineNotFound = "not_found"
)

// rawEntry is a single member of the packages object, kept in document
// order so that colliding keys resolve deterministically.
type rawEntry struct {
	key   string
	value json.RawMessage
}

// readEntries splits a JSON object into its members without decoding the
// values.
func readEntries(data json.RawMessage) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errPackagesNotObject
	}

	entries := []rawEntry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in packages", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("reading packages entry %q: %w", key, err)
		}
		entries = append(entries, rawEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// normalizePackages turns the raw packages object into a map keyed by
// package name. Entries that cannot be decoded are logged and dropped;
// only a packages value that is not an object at all is an error.
// When two entries resolve to the same name the one appearing later in
// the document wins.
func (p *Parser) normalizePackages(data json.RawMessage) (map[string]Package, error) {
	entries, err := readEntries(data)
	if err != nil {
		return nil, err
	}

	packages := make(map[string]Package, len(entries))
	for _, entry := range entries {
		log := p.log.WithField("key", entry.key)
		if entry.key == "" {
			log.Info("Skipping root project entry in packages")
			continue
		}

		pkg, err := p.decodePackage(entry.key, entry.value)
		if err != nil {
			if pkg.Link {
				log.Infof("Skipping link entry: %v", err)
				continue
			}
			log.WithField("raw", string(entry.value)).Errorf("Could not parse package entry: %v", err)
			continue
		}

		name, ok := p.packageName(entry.key, pkg)
		if !ok {
			log.Debug("Skipping nested install")
			continue
		}
		if _, seen := packages[name]; seen {
			log.Debugf("Replacing previous entry for %s", name)
		}
		packages[name] = pkg
	}
	return packages, nil
}

// decodePackage decodes a single packages entry, repairing an engines
// field written as an array first. On failure the returned Package holds
// whatever could be decoded.
func (p *Parser) decodePackage(key string, raw json.RawMessage) (Package, error) {
	var pkg Package
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return pkg, err
	}

	fixed, err := p.normalizeEngines(key, fields)
	if err != nil {
		return pkg, err
	}
	if fixed {
		if raw, err = json.Marshal(fields); err != nil {
			return pkg, err
		}
	}

	if err := json.Unmarshal(raw, &pkg); err != nil {
		return pkg, err
	}
	if v, ok := fields["version"]; !ok || isNull(v) {
		return pkg, errMissingVersion
	}
	return pkg, nil
}

// normalizeEngines rewrites an engines array such as ["node >=6.9.0"]
// into the object form {"node": ">=6.9.0"}. An empty array removes the
// field. It reports whether fields was changed.
func (p *Parser) normalizeEngines(key string, fields map[string]json.RawMessage) (bool, error) {
	raw, ok := fields["engines"]
	if !ok || !isArray(raw) {
		return false, nil
	}
	p.log.WithField("key", key).Warn("Found engines as an array instead of an object, fixing it")

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return false, err
	}
	if len(list) == 0 {
		delete(fields, "engines")
		return true, nil
	}

	engines := make(map[string]string, len(list))
	for _, item := range list {
		name, constraint := splitEngine(item)
		engines[name] = constraint
	}
	b, err := json.Marshal(engines)
	if err != nil {
		return false, err
	}
	fields["engines"] = b
	return true, nil
}

// splitEngine splits "node >=6.9.0" on its first space.
func splitEngine(item json.RawMessage) (string, string) {
	var s string
	if err := json.Unmarshal(item, &s); err != nil {
		return engineNotFound, engineNotFound
	}
	name, constraint, found := strings.Cut(s, " ")
	if !found {
		return engineNotFound, engineNotFound
	}
	return name, constraint
}

// packageName resolves the map key for an entry. Top-level installs lose
// the install prefix, nested installs are rejected and workspace members
// are keyed by their declared name when they carry one. The prefix only
// marks a nested install as a whole path segment: "a/xnode_modules/b" is
// a top-level name.
func (p *Parser) packageName(key string, pkg Package) (string, bool) {
	if strings.HasPrefix(key, p.installPrefix) {
		name := strings.TrimPrefix(key, p.installPrefix)
		if strings.Contains(name, "/"+p.installPrefix) {
			return "", false
		}
		return name, true
	}
	if pkg.Name != "" {
		return pkg.Name, true
	}
	return key, true
}

func isArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
