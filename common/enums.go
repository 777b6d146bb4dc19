// Package common keeps enums shared between configuration and commands, so
// neither has to import the other.
package common

// Requested output type.
// ENUM(dir, zip)
type OutputFmt int

// Ext returns file name extension for produced output, directories have none.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtZip:
		return ".zip"
	case OutputFmtDir:
		return ""
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// How compiled stylesheet is mounted into the page.
// ENUM(inline, external)
type StylesheetMode int
