package parser

import (
	"reflect"
	"testing"
)

func TestReadDelimited(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		comma    rune
		expected [][]string
	}{
		{
			name:     "comma with quotes",
			data:     []byte("Nombre,Correo\n\"Perez, Ana\",ana@x.com\nLuis\n"),
			expected: [][]string{{"Nombre", "Correo"}, {"Perez, Ana", "ana@x.com"}, {"Luis"}},
		},
		{
			name:     "byte order mark is dropped",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nombre\nAna\n")...),
			expected: [][]string{{"Nombre"}, {"Ana"}},
		},
		{
			name:     "semicolon is sniffed",
			data:     []byte("Nombre;Cedula\nAna;1,5\n"),
			expected: [][]string{{"Nombre", "Cedula"}, {"Ana", "1,5"}},
		},
		{
			name:     "explicit tab",
			data:     []byte("Nombre\tCedula\nAna\t1\n"),
			comma:    '\t',
			expected: [][]string{{"Nombre", "Cedula"}, {"Ana", "1"}},
		},
		{
			name:     "windows-1252 input",
			data:     []byte("Nombre,Direcci\xf3n\nAna,Medell\xedn\n"),
			expected: [][]string{{"Nombre", "Dirección"}, {"Ana", "Medellín"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ReadDelimited(tt.data, tt.comma)
			if err != nil {
				t.Fatalf("ReadDelimited failed: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ReadDelimited() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		data     string
		expected rune
	}{
		{"a,b,c\n", ','},
		{"a;b;c\nx,y\n", ';'},
		{"a\tb\n", '\t'},
		{"a|b|c", '|'},
		{"single", ','},
		{"a,b;c\n", ','},
	}

	for _, tt := range tests {
		if result := SniffDelimiter([]byte(tt.data)); result != tt.expected {
			t.Errorf("SniffDelimiter(%q) = %q, expected %q", tt.data, result, tt.expected)
		}
	}
}

func TestMagic(t *testing.T) {
	if !HasZipMagic([]byte("PK\x03\x04rest")) {
		t.Error("Expected zip magic")
	}
	if !HasOLEMagic([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}) {
		t.Error("Expected OLE magic")
	}
	if HasZipMagic([]byte("Nombre,Correo")) || HasOLEMagic([]byte("Nombre")) {
		t.Error("Unexpected magic on text")
	}
	if !LooksBinary([]byte{'a', 0, 'b'}) || LooksBinary([]byte("a,b")) {
		t.Error("LooksBinary mismatch")
	}
}
