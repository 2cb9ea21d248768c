// SPDX-License-Identifier: Apache-2.0

package helper

import "os"

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
