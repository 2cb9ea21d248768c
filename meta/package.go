// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"crypto/md5" // nolint:gosec
	"crypto/sha1" // nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Package is the package abstraction that the parsers return
type Package struct {
	Version                 string `json:"Version,omitempty"`
	Name                    string
	Path                    string `json:"Path,omitempty"`
	Supplier                Supplier
	PackageURL              string
	Checksum                Checksum
	PackageHomePage         string
	PackageDownloadLocation string
	LicenseConcluded        string
	LicenseDeclared         string
	PackageComment          string
	Root                    bool
	Packages                map[string]*Package
}

// SupplierType ...
type SupplierType string

const (
	Person       SupplierType = "Person"
	Organization SupplierType = "Organization"
)

// Supplier abstracts the supplier of the package
type Supplier struct {
	Type  SupplierType
	Name  string
	Email string
}

func (s *Supplier) emailIsEmpty() bool {
	email := strings.ToLower(s.Email)
	return email == "" || email == "none" || email == "unknown"
}

// Get returns the SPDX supplier string, empty when no supplier is known.
func (s *Supplier) Get() string {
	if s.Name == "" {
		return ""
	}
	if s.Type == "" {
		s.Type = Organization
	}

	pkgSupplier := fmt.Sprintf("%s: %s", s.Type, s.Name)
	if !s.emailIsEmpty() {
		pkgSupplier += fmt.Sprintf(" (%s)", s.Email)
	}
	return pkgSupplier
}

type Checksum struct {
	Algorithm HashAlgorithm
	Content   []byte
	Value     string
}

func (c *Checksum) String() string {
	if c.Value == "" {
		c.Value = c.Compute(c.Content)
	}
	return c.Value
}

// Compute hashes content with the checksum algorithm. Algorithms without
// an implementation (MD2, MD4, MD6) yield an empty string rather than a
// digest computed with another algorithm.
func (c *Checksum) Compute(content []byte) string {
	var h hash.Hash
	switch c.Algorithm {
	case HashAlgoSHA1:
		h = sha1.New() // nolint:gosec
	case HashAlgoSHA224:
		h = sha256.New224()
	case HashAlgoSHA256:
		h = sha256.New()
	case HashAlgoSHA384:
		h = sha512.New384()
	case HashAlgoSHA512:
		h = sha512.New()
	case HashAlgoMD5:
		h = md5.New() // nolint:gosec
	default:
		return ""
	}
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// HashAlgorithm ...
type HashAlgorithm string

const (
	HashAlgoSHA1        HashAlgorithm = "SHA1"
	HashAlgoSHA224      HashAlgorithm = "SHA224"
	HashAlgoSHA256      HashAlgorithm = "SHA256"
	HashAlgoSHA384      HashAlgorithm = "SHA384"
	HashAlgoSHA512      HashAlgorithm = "SHA512"
	HashAlgoMD2         HashAlgorithm = "MD2"
	HashAlgoMD4         HashAlgorithm = "MD4"
	HashAlgoMD5         HashAlgorithm = "MD5"
	HashAlgoMD6         HashAlgorithm = "MD6"
	HashAlgoUnsupported HashAlgorithm = "UNSUPPORTED"
)

var hashAlgorithms = []HashAlgorithm{
	HashAlgoSHA1, HashAlgoSHA224, HashAlgoSHA256, HashAlgoSHA384, HashAlgoSHA512,
	HashAlgoMD2, HashAlgoMD4, HashAlgoMD5, HashAlgoMD6,
}

// GetHashAlgorithm maps an algorithm name as found in lockfiles
// ("sha512", "md5") to a HashAlgorithm, case insensitively.
func GetHashAlgorithm(name string) HashAlgorithm {
	for _, algo := range hashAlgorithms {
		if strings.EqualFold(name, string(algo)) {
			return algo
		}
	}
	return HashAlgoUnsupported
}
