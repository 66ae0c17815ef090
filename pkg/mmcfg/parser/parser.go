package parser

import (
	"errors"
	"fmt"
	"os"

	"kspmm/mmcfg/pkg/mmcfg/ast"
	mmerrors "kspmm/mmcfg/pkg/mmcfg/errors"
)

// ErrFileTooLarge is returned when input exceeds the parser's size limit.
var ErrFileTooLarge = errors.New("file too large")

// DefaultMaxFileSize is the default input size limit (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// Parser parses patch files from disk or memory. The zero value is not
// usable; create one with NewParser. A Parser is safe for concurrent use.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes
	contextLine int   // Lines of source shown around an error
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
		contextLine: 2,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithContextLines sets how many lines around an error are quoted in its
// Context. Zero disables the excerpt.
func (p *Parser) WithContextLines(n int) *Parser {
	p.contextLine = n
	return p
}

// Parse reads and parses the file at path.
// I/O failures are returned wrapped; grammar failures are returned as
// *errors.SyntaxError attributed to path.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}
	if fileInfo.Size() > p.maxFileSize {
		return nil, fmt.Errorf("%s: size %d exceeds maximum %d bytes: %w", path, fileInfo.Size(), p.maxFileSize, ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses data as if it had been read from sourcePath.
// This is useful for testing or for editor buffers.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("%s: size %d exceeds maximum %d bytes: %w", sourcePath, len(data), p.maxFileSize, ErrFileTooLarge)
	}

	src := string(data)
	nodes, err := run(rules().document, src, sourcePath)
	if err != nil {
		var syntaxErr *mmerrors.SyntaxError
		if errors.As(err, &syntaxErr) && p.contextLine > 0 {
			mmerrors.WithContext(syntaxErr, src, p.contextLine)
		}
		return nil, err
	}

	return &ast.Document{Path: sourcePath, Nodes: nodes}, nil
}
