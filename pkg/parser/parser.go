// Package parser implements the Mython recursive-descent parser, turning
// the lexer's token stream into an executable AST.
package parser

import (
	"fmt"
	"io"

	"github.com/mython-lang/mython/pkg/ast"
	"github.com/mython-lang/mython/pkg/diagnostics"
	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/runtime"
)

// Error wraps a diagnostic for parse errors.
type Error struct {
	Diag diagnostics.Diagnostic
}

func (e *Error) Error() string {
	return e.Diag.Message
}

type parser struct {
	lx *lexer.Lexer

	// classes maps names declared by class statements so far; the parser
	// resolves base classes and constructor calls against it.
	classes map[string]*runtime.Class
}

// Parse tokenizes the source stream and parses it into the program's
// top-level compound statement.
func Parse(r io.Reader) (*ast.Compound, error) {
	lx, err := lexer.New(r)
	if err != nil {
		return nil, err
	}
	return ParseTokens(lx)
}

// ParseTokens parses a program from an already-constructed lexer.
func ParseTokens(lx *lexer.Lexer) (*ast.Compound, error) {
	p := &parser{lx: lx, classes: make(map[string]*runtime.Class)}
	return p.parseProgram()
}

func (p *parser) current() lexer.Token {
	return p.lx.CurrentToken()
}

func (p *parser) advance() lexer.Token {
	return p.lx.NextToken()
}

func (p *parser) parseError(format string, args ...any) error {
	return &Error{Diag: diagnostics.MakeDiag(diagnostics.EParse, fmt.Sprintf(format, args...), "")}
}

// expectChar consumes a single punctuation token, failing through the
// lexer's expect machinery.
func (p *parser) expectChar(c byte) error {
	if err := p.lx.ExpectToken(lexer.CharToken(c)); err != nil {
		return err
	}
	p.advance()
	return nil
}

func (p *parser) expectType(tt lexer.TokenType) (lexer.Token, error) {
	tok, err := p.lx.Expect(tt)
	if err != nil {
		return lexer.Token{}, err
	}
	p.advance()
	return tok, nil
}

func (p *parser) expectNewline() error {
	_, err := p.expectType(lexer.TokNewline)
	return err
}

// --- Program ---

func (p *parser) parseProgram() (*ast.Compound, error) {
	prog := &ast.Compound{}
	for p.current().Type != lexer.TokEOF {
		if p.current().Type == lexer.TokNewline {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.AddStatement(stmt)
	}
	return prog, nil
}

// --- Statements ---

func (p *parser) parseStatement() (ast.Statement, error) {
	switch p.current().Type {
	case lexer.TokClass:
		return p.parseClassDefinition()
	case lexer.TokIf:
		return p.parseIfElse()
	case lexer.TokPrint:
		return p.parsePrint()
	case lexer.TokReturn:
		return p.parseReturn()
	case lexer.TokIdent:
		return p.parseAssignmentOrExpr()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectNewline(); err != nil {
			return nil, err
		}
		return expr, nil
	}
}

func (p *parser) parseAssignmentOrExpr() (ast.Statement, error) {
	ids, err := p.parseDottedIDs()
	if err != nil {
		return nil, err
	}

	if p.current().Equals(lexer.CharToken('=')) {
		p.advance()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectNewline(); err != nil {
			return nil, err
		}
		if len(ids) == 1 {
			return &ast.Assignment{Var: ids[0], RHS: rhs}, nil
		}
		return &ast.FieldAssignment{
			Object:    &ast.VariableValue{DottedIDs: ids[:len(ids)-1]},
			FieldName: ids[len(ids)-1],
			RHS:       rhs,
		}, nil
	}

	// Not an assignment: the ids are the leftmost primary of an
	// expression statement.
	primary, err := p.parseTrailer(ids)
	if err != nil {
		return nil, err
	}
	expr, err := p.continueExpression(primary)
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parsePrint() (ast.Statement, error) {
	if _, err := p.expectType(lexer.TokPrint); err != nil {
		return nil, err
	}
	stmt := &ast.Print{}
	if p.current().Type != lexer.TokNewline {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Args = append(stmt.Args, arg)
			if !p.current().Equals(lexer.CharToken(',')) {
				break
			}
			p.advance()
		}
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseReturn() (ast.Statement, error) {
	if _, err := p.expectType(lexer.TokReturn); err != nil {
		return nil, err
	}
	if p.current().Type == lexer.TokNewline {
		p.advance()
		return &ast.Return{}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

func (p *parser) parseIfElse() (ast.Statement, error) {
	if _, err := p.expectType(lexer.TokIf); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	ifBody, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfElse{Cond: cond, IfBody: ifBody}
	if p.current().Type == lexer.TokElse {
		p.advance()
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		elseBody, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = elseBody
	}
	return stmt, nil
}

// parseSuite parses an indented statement block: Newline Indent statements
// Dedent.
func (p *parser) parseSuite() (*ast.Compound, error) {
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	if _, err := p.expectType(lexer.TokIndent); err != nil {
		return nil, err
	}
	body := &ast.Compound{}
	for p.current().Type != lexer.TokDedent && p.current().Type != lexer.TokEOF {
		if p.current().Type == lexer.TokNewline {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body.AddStatement(stmt)
	}
	if _, err := p.expectType(lexer.TokDedent); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *parser) parseClassDefinition() (ast.Statement, error) {
	if _, err := p.expectType(lexer.TokClass); err != nil {
		return nil, err
	}
	nameTok, err := p.expectType(lexer.TokIdent)
	if err != nil {
		return nil, err
	}

	var parent *runtime.Class
	if p.current().Equals(lexer.CharToken('(')) {
		p.advance()
		baseTok, err := p.expectType(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		base, ok := p.classes[baseTok.Text]
		if !ok {
			return nil, p.parseError("undefined base class %q for class %q", baseTok.Text, nameTok.Text)
		}
		parent = base
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}

	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	if _, err := p.expectType(lexer.TokIndent); err != nil {
		return nil, err
	}

	var methods []runtime.Method
	for p.current().Type != lexer.TokDedent && p.current().Type != lexer.TokEOF {
		if p.current().Type == lexer.TokNewline {
			p.advance()
			continue
		}
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expectType(lexer.TokDedent); err != nil {
		return nil, err
	}

	cls := runtime.NewClass(nameTok.Text, methods, parent)
	p.classes[nameTok.Text] = cls
	return &ast.ClassDefinition{Cls: runtime.Own(cls)}, nil
}

func (p *parser) parseMethod() (runtime.Method, error) {
	if _, err := p.expectType(lexer.TokDef); err != nil {
		return runtime.Method{}, err
	}
	nameTok, err := p.expectType(lexer.TokIdent)
	if err != nil {
		return runtime.Method{}, err
	}
	if err := p.expectChar('('); err != nil {
		return runtime.Method{}, err
	}

	var params []string
	if p.current().Type == lexer.TokIdent {
		for {
			paramTok, err := p.expectType(lexer.TokIdent)
			if err != nil {
				return runtime.Method{}, err
			}
			params = append(params, paramTok.Text)
			if !p.current().Equals(lexer.CharToken(',')) {
				break
			}
			p.advance()
		}
	}
	// The receiver is bound by ClassInstance.Call, so FormalParams lists
	// only the parameters supplied at the call site.
	if len(params) > 0 && params[0] == "self" {
		params = params[1:]
	}
	if err := p.expectChar(')'); err != nil {
		return runtime.Method{}, err
	}
	if err := p.expectChar(':'); err != nil {
		return runtime.Method{}, err
	}

	body, err := p.parseSuite()
	if err != nil {
		return runtime.Method{}, err
	}
	return runtime.Method{
		Name:         nameTok.Text,
		FormalParams: params,
		Body:         &ast.MethodBody{Body: body},
	}, nil
}

// --- Expressions ---

// Precedence, loosest first: or, and, not, comparison, additive,
// multiplicative, primary.

func (p *parser) parseExpression() (ast.Statement, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	return p.parseOrRest(left)
}

func (p *parser) parseOrRest(left ast.Statement) (ast.Statement, error) {
	for p.current().Type == lexer.TokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Or{LHS: left, RHS: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Statement, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return p.parseAndRest(left)
}

func (p *parser) parseAndRest(left ast.Statement) (ast.Statement, error) {
	for p.current().Type == lexer.TokAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.And{LHS: left, RHS: right}
	}
	return left, nil
}

func (p *parser) parseNot() (ast.Statement, error) {
	if p.current().Type == lexer.TokNot {
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (ast.Statement, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return p.parseComparisonRest(left)
}

func (p *parser) comparatorFor(tok lexer.Token) runtime.Comparator {
	switch {
	case tok.Type == lexer.TokEq:
		return runtime.Equal
	case tok.Type == lexer.TokNotEq:
		return runtime.NotEqual
	case tok.Type == lexer.TokLessOrEq:
		return runtime.LessOrEqual
	case tok.Type == lexer.TokGreaterOrEq:
		return runtime.GreaterOrEqual
	case tok.Equals(lexer.CharToken('<')):
		return runtime.Less
	case tok.Equals(lexer.CharToken('>')):
		return runtime.Greater
	}
	return nil
}

func (p *parser) parseComparisonRest(left ast.Statement) (ast.Statement, error) {
	cmp := p.comparatorFor(p.current())
	if cmp == nil {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Cmp: cmp, LHS: left, RHS: right}, nil
}

func (p *parser) parseAdditive() (ast.Statement, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	return p.parseAdditiveRest(left)
}

func (p *parser) parseAdditiveRest(left ast.Statement) (ast.Statement, error) {
	for {
		switch {
		case p.current().Equals(lexer.CharToken('+')):
			p.advance()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &ast.Add{LHS: left, RHS: right}
		case p.current().Equals(lexer.CharToken('-')):
			p.advance()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &ast.Sub{LHS: left, RHS: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseMultiplicative() (ast.Statement, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseMultiplicativeRest(left)
}

func (p *parser) parseMultiplicativeRest(left ast.Statement) (ast.Statement, error) {
	for {
		switch {
		case p.current().Equals(lexer.CharToken('*')):
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = &ast.Mult{LHS: left, RHS: right}
		case p.current().Equals(lexer.CharToken('/')):
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = &ast.Div{LHS: left, RHS: right}
		default:
			return left, nil
		}
	}
}

// continueExpression climbs the precedence ladder from an already-parsed
// primary. Used for expression statements, where the leading identifier
// chain is consumed before assignment can be ruled out.
func (p *parser) continueExpression(primary ast.Statement) (ast.Statement, error) {
	left, err := p.parseMultiplicativeRest(primary)
	if err != nil {
		return nil, err
	}
	left, err = p.parseAdditiveRest(left)
	if err != nil {
		return nil, err
	}
	left, err = p.parseComparisonRest(left)
	if err != nil {
		return nil, err
	}
	left, err = p.parseAndRest(left)
	if err != nil {
		return nil, err
	}
	return p.parseOrRest(left)
}

func (p *parser) parsePrimary() (ast.Statement, error) {
	tok := p.current()
	switch {
	case tok.Type == lexer.TokNumber:
		p.advance()
		return &ast.NumberConst{Value: tok.Num}, nil
	case tok.Type == lexer.TokString:
		p.advance()
		return &ast.StringConst{Value: tok.Text}, nil
	case tok.Type == lexer.TokTrue:
		p.advance()
		return &ast.BoolConst{Value: true}, nil
	case tok.Type == lexer.TokFalse:
		p.advance()
		return &ast.BoolConst{Value: false}, nil
	case tok.Type == lexer.TokNone:
		p.advance()
		return &ast.NoneConst{}, nil
	case tok.Equals(lexer.CharToken('(')):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return expr, nil
	case tok.Type == lexer.TokIdent:
		ids, err := p.parseDottedIDs()
		if err != nil {
			return nil, err
		}
		return p.parseTrailer(ids)
	default:
		return nil, p.parseError("unexpected token %s in expression", tok)
	}
}

// parseTrailer turns a dotted identifier chain into a primary: a variable
// access, a str() call, a constructor call, or a method call.
func (p *parser) parseTrailer(ids []string) (ast.Statement, error) {
	if !p.current().Equals(lexer.CharToken('(')) {
		return &ast.VariableValue{DottedIDs: ids}, nil
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	if len(ids) == 1 {
		if ids[0] == "str" {
			if len(args) != 1 {
				return nil, p.parseError("str() takes exactly one argument, got %d", len(args))
			}
			return &ast.Stringify{Arg: args[0]}, nil
		}
		cls, ok := p.classes[ids[0]]
		if !ok {
			return nil, p.parseError("%q is not a class and cannot be called", ids[0])
		}
		return &ast.NewInstance{Class: cls, Args: args}, nil
	}

	return &ast.MethodCall{
		Object: &ast.VariableValue{DottedIDs: ids[:len(ids)-1]},
		Method: ids[len(ids)-1],
		Args:   args,
	}, nil
}

func (p *parser) parseArgs() ([]ast.Statement, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var args []ast.Statement
	if !p.current().Equals(lexer.CharToken(')')) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.current().Equals(lexer.CharToken(',')) {
				break
			}
			p.advance()
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseDottedIDs() ([]string, error) {
	tok, err := p.expectType(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	ids := []string{tok.Text}
	for p.current().Equals(lexer.CharToken('.')) {
		p.advance()
		tok, err := p.expectType(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tok.Text)
	}
	return ids, nil
}
