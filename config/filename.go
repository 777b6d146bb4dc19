package config

import (
	"os"
	"strings"
)

// CleanFileName drops characters which are not allowed in file names on
// current platform together with leading dots and spaces.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(forbiddenInNames+string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(out, ". ")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
