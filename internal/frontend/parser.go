package frontend

import (
	"fmt"
	"strconv"

	"github.com/SNSystems/toy-tools/internal/instruction"
)

// Options controls how a source file is parsed.
type Options struct {
	// SourceFile is the path recorded on every SourceLocation.
	SourceFile string
	// DebugInfo, when true, attaches a SourceLocation to every
	// instruction (the compiler's -g flag). When false, every
	// instruction is parsed with a nil location.
	DebugInfo bool
}

// Program is a parsed source file: every top-level named procedure it
// defines, in declaration order.
type Program struct {
	Names []string
	Procs map[string]*instruction.Procedure
}

// Parse lexes and parses src under opt, returning every named top-level
// procedure it defines.
func Parse(src string, opt Options) (*Program, error) {
	p := &parser{lex: newLexer(src), opt: opt}
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog := &Program{Procs: make(map[string]*instruction.Procedure)}
	for p.tok.kind != tokEOF {
		name, proc, err := p.parseNamedProcedure()
		if err != nil {
			return nil, err
		}
		if _, exists := prog.Procs[name]; exists {
			return nil, fmt.Errorf("%s:%d:%d: procedure %q redefined", opt.SourceFile, p.tok.line, p.tok.column, name)
		}
		prog.Names = append(prog.Names, name)
		prog.Procs[name] = proc
	}
	return prog, nil
}

type parser struct {
	lex *lexer
	opt Options
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) location(line, column int) *instruction.SourceLocation {
	if !p.opt.DebugInfo {
		return nil
	}
	return &instruction.SourceLocation{SrcFile: p.opt.SourceFile, Line: line, Column: column}
}

func (p *parser) parseNamedProcedure() (string, *instruction.Procedure, error) {
	if p.tok.kind != tokIdent {
		return "", nil, fmt.Errorf("%s:%d:%d: expected a procedure name, got %q", p.opt.SourceFile, p.tok.line, p.tok.column, p.tok.text)
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return "", nil, err
	}
	proc, err := p.parseProcedure()
	if err != nil {
		return "", nil, err
	}
	return name, proc, nil
}

func (p *parser) parseProcedure() (*instruction.Procedure, error) {
	if p.tok.kind != tokLBrace {
		return nil, fmt.Errorf("%s:%d:%d: expected '{', got %q", p.opt.SourceFile, p.tok.line, p.tok.column, p.tok.text)
	}
	line, column := p.tok.line, p.tok.column
	if err := p.advance(); err != nil {
		return nil, err
	}

	var body []instruction.Instruction
	for p.tok.kind != tokRBrace {
		if p.tok.kind == tokEOF {
			return nil, fmt.Errorf("%s:%d:%d: unterminated procedure body", p.opt.SourceFile, line, column)
		}
		inst, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		body = append(body, inst)
	}
	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}
	return instruction.NewProcedure(body, p.location(line, column)), nil
}

func (p *parser) parseInstruction() (instruction.Instruction, error) {
	line, column := p.tok.line, p.tok.column
	switch p.tok.kind {
	case tokLBrace:
		return p.parseProcedure()
	case tokNumber:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return instruction.NewNumber(v, p.location(line, column)), nil
	case tokString:
		v := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return instruction.NewString(v, p.location(line, column)), nil
	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch name {
		case "true":
			return instruction.NewBoolean(true, p.location(line, column)), nil
		case "false":
			return instruction.NewBoolean(false, p.location(line, column)), nil
		default:
			return instruction.NewOperator(name, p.location(line, column)), nil
		}
	default:
		return nil, fmt.Errorf("%s:%d:%d: unexpected token %q in procedure body", p.opt.SourceFile, line, column, p.tok.text)
	}
}
