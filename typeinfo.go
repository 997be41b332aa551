package main

import (
	"encoding/json"

	"github.com/pontaoski/idkc/codegen/llvm"
	"github.com/pontaoski/idkc/reader"
)

func getSymbolInfoFromFile(f string) (t llvm.SymbolInfo, err error) {
	data, err := reader.ReadSymbols(f, llvm.SymbolsGlobal)
	if err != nil {
		return llvm.SymbolInfo{}, err
	}

	err = json.Unmarshal([]byte(data), &t)
	return
}
