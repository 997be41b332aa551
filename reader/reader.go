// Package reader pulls the embedded symbol table out of a compiled idk
// shared object.
package reader

import "github.com/coreos/pkg/dlopen"

import "C"

// ReadSymbols returns the NUL terminated contents of the named global.
func ReadSymbols(from, global string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(global)
	if err != nil {
		return "", err
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}
