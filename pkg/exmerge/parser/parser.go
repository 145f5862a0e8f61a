// Package parser reads spreadsheet files into rows of strings.
package parser

// DefaultChunkSize is the number of rows normalized between progress reports.
const DefaultChunkSize = 1000

// oleMagic is the signature of OLE2 compound files (legacy .xls workbooks).
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// zipMagic is the signature of ZIP containers (OOXML workbooks).
var zipMagic = []byte("PK\x03\x04")
