package driver

import (
	"fmt"

	"fortio.org/safecast"

	"arttrace/internal/diag"
	"arttrace/internal/lexer"
	"arttrace/internal/source"
	"arttrace/internal/token"
)

// LineTokens are the tokens scanned from one line.
type LineTokens struct {
	Line   uint32
	Tokens []token.Token
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lines   []LineTokens
	Bag     *diag.Bag
}

// Tokenize scans every line of a file. Blank lines are omitted.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(lexer.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		File:            fileID,
		ReportUnmatched: true,
	})

	var lines []LineTokens
	for i, line := range file.Lines() {
		lineNo, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return nil, err
		}
		toks := lx.Scan(line, lineNo)
		if len(toks) == 1 && toks[0].Kind == token.EOF {
			continue
		}
		lines = append(lines, LineTokens{Line: lineNo, Tokens: toks})
	}
	lastLine, err := safecast.Conv[uint32](file.LineCount())
	if err != nil {
		return nil, err
	}
	lx.Finish(lastLine)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Lines:   lines,
		Bag:     bag,
	}, nil
}
