package driver

import (
	"fmt"

	"stepcheck/internal/diag"
	"stepcheck/internal/lexer"
	"stepcheck/internal/source"
	"stepcheck/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the whole file. Unlike validation it does not stop at the
// first bad character: every Invalid token is reported.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeLoaded(fs, fileID, maxDiagnostics), nil
}

// TokenizeContent is Tokenize for in-memory text.
func TokenizeContent(name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeLoaded(fs, fs.AddVirtual(name, content), maxDiagnostics)
}

func tokenizeLoaded(fs *source.FileSet, id source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}
}
