package hy3

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/text/encoding"

	"github.com/tildaslashalef/meetparse/internal/loggy"
)

const (
	// sniffSize is how much of the input is inspected for binary content
	sniffSize = 8 * 1024
	// maxLineLength bounds a single record line
	maxLineLength = 64 * 1024
)

// UnknownRecordPolicy decides what happens to lines whose record code has no decoder
type UnknownRecordPolicy int

const (
	// PolicyIgnore skips unsupported records and counts them in Result.Skipped
	PolicyIgnore UnknownRecordPolicy = iota
	// PolicyError stops the parse at the first unsupported record
	PolicyError
)

// String returns the config name of the policy
func (p UnknownRecordPolicy) String() string {
	if p == PolicyError {
		return "error"
	}
	return "ignore"
}

// ParsePolicy converts a config value into an UnknownRecordPolicy
func ParsePolicy(s string) (UnknownRecordPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore", "skip":
		return PolicyIgnore, nil
	case "error", "strict":
		return PolicyError, nil
	}
	return PolicyIgnore, fmt.Errorf("invalid unknown record policy: %s", s)
}

// Result is the outcome of parsing one file
type Result struct {
	File *ParsedFile
	// Records is the number of lines handed to a decoder
	Records int
	// Skipped counts unsupported record codes that were ignored
	Skipped map[string]int
}

// Parser reads HY3 lines from a reader and feeds them to the decoders in order
type Parser struct {
	logger   *loggy.Logger
	opts     Options
	policy   UnknownRecordPolicy
	encoding encoding.Encoding
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithOptions sets the decoder options
func WithOptions(opts Options) ParserOption {
	return func(p *Parser) {
		p.opts = opts
	}
}

// WithUnknownRecordPolicy sets the policy for unsupported record codes
func WithUnknownRecordPolicy(policy UnknownRecordPolicy) ParserOption {
	return func(p *Parser) {
		p.policy = policy
	}
}

// WithEncoding decodes the input from a legacy character set before parsing
func WithEncoding(enc encoding.Encoding) ParserOption {
	return func(p *Parser) {
		p.encoding = enc
	}
}

// NewParser creates a new parser
func NewParser(logger *loggy.Logger, options ...ParserOption) *Parser {
	p := &Parser{
		logger: logger,
		policy: PolicyIgnore,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Options returns the decoder options the parser was built with
func (p *Parser) Options() Options {
	return p.opts
}

// Parse reads every line of r and returns the aggregated file
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Result, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	sample, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(sample) > 0 && enry.IsBinary(sample) {
		return nil, ErrBinaryInput
	}

	var src io.Reader = br
	if p.encoding != nil {
		src = p.encoding.NewDecoder().Reader(br)
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	result := &Result{
		File:    NewParsedFile(),
		Skipped: make(map[string]int),
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		code := RecordCode(line)
		decode, ok := LookupDecoder(code)
		if !ok {
			if p.policy == PolicyError {
				return nil, &LineError{Line: lineNo, Record: code, Err: ErrUnknownRecord}
			}
			result.Skipped[code]++
			continue
		}

		if err := decode(line, result.File, p.opts); err != nil {
			return nil, &LineError{Line: lineNo, Record: code, Err: err}
		}
		result.Records++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning input: %w", err)
	}

	if len(result.Skipped) > 0 {
		p.loggerFor(ctx).Debug("Skipped unsupported records", "skipped", result.Skipped)
	}

	return result, nil
}

// ParseFile opens path and parses it
func (p *Parser) ParseFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	result, err := p.Parse(ctx, f)
	if err != nil {
		return nil, err
	}

	p.loggerFor(ctx).Info("Parsed meet file", "path", path, "records", result.Records)
	return result, nil
}

// loggerFor tags the parser logger with the parse id carried by ctx
func (p *Parser) loggerFor(ctx context.Context) *loggy.Logger {
	if id := loggy.GetParseID(ctx); id != "" {
		return p.logger.With("parse_id", id)
	}
	return p.logger
}
