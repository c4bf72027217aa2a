// Package parser turns a token stream into an internal/ast.File by
// combinator-based recursive descent. It is an external collaborator to the
// resolver: the resolver only ever depends on the ast package, never on this
// one. A file with any syntax error contributes zero declarations.
package parser

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/lexer"
	"tim/internal/source"
	"tim/internal/token"
)

// Parser holds the token stream for one file and accumulates syntax
// diagnostics.
type Parser struct {
	file   source.FileID
	toks   []token.Token
	pos    int
	report diag.Reporter
	failed bool
}

// Parse lexes and parses text (registered as file) into an ast.File. The
// returned bool reports whether parsing completed without a syntax error; on
// false the caller must not feed the result's declarations into the module
// graph.
func Parse(file source.FileID, text string, report diag.Reporter) (*ast.File, bool) {
	toks := lexer.New(file, text, report).Tokenize()
	p := &Parser{file: file, toks: toks, report: report}
	f := p.parseFile()
	return f, !p.failed
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) || idx < 0 {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorExpected(k)
	return token.Token{}, false
}

func (p *Parser) errorExpected(k token.Kind) {
	p.failed = true
	cur := p.peek()
	msg := fmt.Sprintf("expected %s, found %s", k, cur.Kind)
	if p.report != nil {
		diag.ReportError(p.report, diag.SyntaxError, cur.Span, msg).Emit()
	}
}

func (p *Parser) errorAt(span source.Span, msg string) {
	p.failed = true
	if p.report != nil {
		diag.ReportError(p.report, diag.SyntaxError, span, msg).Emit()
	}
}

func (p *Parser) parseFile() *ast.File {
	f := &ast.File{Source: p.file}
	start := p.peek().Span
	for !p.at(token.EOF) {
		if p.at(token.KwUse) {
			if imp := p.parseImport(); imp != nil {
				f.Imports = append(f.Imports, imp)
			}
			continue
		}
		if d := p.parseDecl(); d != nil {
			f.Decls = append(f.Decls, d)
		} else if !p.at(token.EOF) {
			// Avoid an infinite loop on unrecognized input.
			p.advance()
		}
	}
	end := p.peekAt(-1).Span
	f.Span = start.Cover(end)
	return f
}

func (p *Parser) parseImport() *ast.Import {
	kw, _ := p.expect(token.KwUse)
	imp := &ast.Import{}
	pathStart := p.peek().Span
	for {
		name, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		imp.Path = append(imp.Path, name.Text)
		if p.at(token.Dot) {
			p.advance()
			if p.at(token.Star) {
				p.advance()
				imp.Wildcard = true
				break
			}
			continue
		}
		break
	}
	pathEnd := p.peekAt(-1).Span
	imp.PathSpan = pathStart.Cover(pathEnd)
	if _, ok := p.eat(token.KwAs); ok {
		alias, ok := p.expect(token.Ident)
		if ok {
			imp.Alias = alias.Text
			imp.AliasSpan = alias.Span
		}
	}
	semi, _ := p.expect(token.Semicolon)
	imp.Span = kw.Span.Cover(semi.Span)
	return imp
}

func (p *Parser) parseDecl() ast.Decl {
	public := false
	pubSpan := p.peek().Span
	if p.at(token.KwPub) {
		p.advance()
		public = true
	}
	switch p.peek().Kind {
	case token.KwClass:
		return p.parseClass(public, pubSpan)
	case token.KwInterface:
		return p.parseInterface(public, pubSpan)
	case token.KwExtend:
		return p.parseExtend()
	case token.KwFunc:
		return p.parseFunc(public, pubSpan)
	case token.KwStatic:
		return p.parseStatic(public, pubSpan)
	default:
		if public {
			p.errorAt(p.peek().Span, "expected a declaration after 'pub'")
		}
		return nil
	}
}

func (p *Parser) parseClass(public bool, pubSpan source.Span) ast.Decl {
	kw, _ := p.expect(token.KwClass)
	name, _ := p.expect(token.Ident)
	decl := &ast.ClassDecl{Name: name.Text, NameSpan: name.Span, Public: public}
	if _, ok := p.expect(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if p.at(token.KwFunc) || (p.at(token.KwPub) && p.peekAt(1).Kind == token.KwFunc) {
				if fn, ok := p.parseFuncMember(); ok {
					decl.Methods = append(decl.Methods, fn)
				}
				continue
			}
			if field, ok := p.parseField(); ok {
				decl.Fields = append(decl.Fields, field)
			} else {
				break
			}
		}
		rb, _ := p.expect(token.RBrace)
		startSpan := kw.Span
		if public {
			startSpan = pubSpan
		}
		decl.Span = startSpan.Cover(rb.Span)
	}
	return decl
}

func (p *Parser) parseFuncMember() (*ast.FuncDecl, bool) {
	public := false
	pubSpan := p.peek().Span
	if p.at(token.KwPub) {
		p.advance()
		public = true
	}
	fn := p.parseFunc(public, pubSpan)
	if fn == nil {
		return nil, false
	}
	return fn.(*ast.FuncDecl), true
}

func (p *Parser) parseField() (*ast.Field, bool) {
	public := false
	pubSpan := p.peek().Span
	if p.at(token.KwPub) {
		p.advance()
		public = true
	}
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	field := &ast.Field{Name: name.Text, NameSpan: name.Span, Public: public}
	if _, ok := p.expect(token.Colon); ok {
		field.Type = p.parseTypeExpr()
	}
	if _, ok := p.eat(token.Assign); ok {
		field.Default = p.parseExpr()
	}
	semi, _ := p.expect(token.Semicolon)
	start := name.Span
	if public {
		start = pubSpan
	}
	field.Span = start.Cover(semi.Span)
	return field, true
}

func (p *Parser) parseInterface(public bool, pubSpan source.Span) ast.Decl {
	kw, _ := p.expect(token.KwInterface)
	name, _ := p.expect(token.Ident)
	decl := &ast.InterfaceDecl{Name: name.Text, NameSpan: name.Span, Public: public}
	if _, ok := p.eat(token.Colon); ok {
		decl.Parent = p.parseTypeExpr()
	}
	if _, ok := p.expect(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if p.at(token.KwFunc) {
				if sig, ok := p.parseFuncSig(); ok {
					decl.Methods = append(decl.Methods, sig)
				}
				continue
			}
			if field, ok := p.parseField(); ok {
				decl.Fields = append(decl.Fields, field)
			} else {
				break
			}
		}
		rb, _ := p.expect(token.RBrace)
		start := kw.Span
		if public {
			start = pubSpan
		}
		decl.Span = start.Cover(rb.Span)
	}
	return decl
}

func (p *Parser) parseFuncSig() (*ast.FuncSig, bool) {
	kw, ok := p.expect(token.KwFunc)
	if !ok {
		return nil, false
	}
	name, _ := p.expect(token.Ident)
	sig := &ast.FuncSig{Name: name.Text, NameSpan: name.Span}
	sig.Params = p.parseParams()
	if _, ok := p.eat(token.Colon); ok {
		sig.Return = p.parseTypeExpr()
	}
	semi, _ := p.expect(token.Semicolon)
	sig.Span = kw.Span.Cover(semi.Span)
	return sig, true
}

func (p *Parser) parseExtend() ast.Decl {
	kw, _ := p.expect(token.KwExtend)
	decl := &ast.ExtendDecl{KeywordSpan: kw.Span}
	className, _ := p.expect(token.Ident)
	decl.ClassName = className.Text
	decl.ClassSpan = className.Span
	if _, ok := p.expect(token.Colon); ok {
		ifaceName, _ := p.expect(token.Ident)
		decl.InterfaceName = ifaceName.Text
		decl.InterfaceSpan = ifaceName.Span
	}
	if _, ok := p.expect(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			fn, ok := p.parseFuncMember()
			if !ok {
				break
			}
			decl.Methods = append(decl.Methods, fn)
		}
		rb, _ := p.expect(token.RBrace)
		decl.Span = kw.Span.Cover(rb.Span)
	}
	return decl
}

func (p *Parser) parseFunc(public bool, pubSpan source.Span) ast.Decl {
	kw, ok := p.expect(token.KwFunc)
	if !ok {
		return nil
	}
	name, _ := p.expect(token.Ident)
	fn := &ast.FuncDecl{Name: name.Text, NameSpan: name.Span, Public: public}
	fn.Params = p.parseParams()
	if _, ok := p.eat(token.Colon); ok {
		fn.Return = p.parseTypeExpr()
	}
	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			stmt := p.parseStmt()
			if stmt == nil {
				break
			}
			fn.Body = append(fn.Body, stmt)
		}
		rb, _ := p.expect(token.RBrace)
		start := kw.Span
		if public {
			start = pubSpan
		}
		fn.Span = start.Cover(rb.Span)
	} else {
		semi, _ := p.expect(token.Semicolon)
		start := kw.Span
		if public {
			start = pubSpan
		}
		fn.Span = start.Cover(semi.Span)
	}
	return fn
}

func (p *Parser) parseParams() []*ast.Param {
	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}
	params := list(p, token.Comma, token.RParen, p.parseParam)
	p.expect(token.RParen)
	return params
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	if p.at(token.KwThis) {
		t := p.advance()
		return &ast.Param{Span: t.Span, Name: "this", IsThis: true}, true
	}
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	param := &ast.Param{Span: name.Span, Name: name.Text}
	if _, ok := p.expect(token.Colon); ok {
		param.Type = p.parseTypeExpr()
	}
	return param, true
}

func (p *Parser) parseStatic(public bool, pubSpan source.Span) ast.Decl {
	kw, _ := p.expect(token.KwStatic)
	name, _ := p.expect(token.Ident)
	decl := &ast.StaticVarDecl{Name: name.Text, NameSpan: name.Span, Public: public}
	if _, ok := p.eat(token.Colon); ok {
		decl.Type = p.parseTypeExpr()
	}
	if _, ok := p.eat(token.Assign); ok {
		decl.Init = p.parseExpr()
	}
	semi, _ := p.expect(token.Semicolon)
	start := kw.Span
	if public {
		start = pubSpan
	}
	decl.Span = start.Cover(semi.Span)
	return decl
}

// parseTypeExpr parses a primitive keyword, an identifier/dotted path, a
// `?T` nullable decoration, or a `ref T` reference decoration.
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	start := p.peek().Span
	switch {
	case p.at(token.Question):
		p.advance()
		inner := p.parseTypeExpr()
		return &ast.TypeExpr{Kind: ast.TypeNullable, Span: start.Cover(innerSpan(inner)), Inner: inner}
	case p.at(token.KwRef):
		p.advance()
		inner := p.parseTypeExpr()
		return &ast.TypeExpr{Kind: ast.TypeReference, Span: start.Cover(innerSpan(inner)), Inner: inner}
	case token.IsPrimitiveKeyword(p.peek().Kind):
		t := p.advance()
		return &ast.TypeExpr{Kind: ast.TypePrimitive, Span: t.Span, Primitive: t.Kind}
	case p.at(token.Ident):
		var path []string
		for {
			name, ok := p.expect(token.Ident)
			if !ok {
				break
			}
			path = append(path, name.Text)
			if _, ok := p.eat(token.Dot); !ok {
				break
			}
		}
		end := p.peekAt(-1).Span
		return &ast.TypeExpr{Kind: ast.TypeName, Span: start.Cover(end), Path: path}
	default:
		p.errorAt(p.peek().Span, "expected a type expression")
		return &ast.TypeExpr{Kind: ast.TypeInvalid, Span: start}
	}
}

func innerSpan(t *ast.TypeExpr) source.Span {
	if t == nil {
		return source.Span{}
	}
	return t.Span
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwReturn:
		return p.parseReturn()
	case token.RBrace, token.EOF:
		return nil
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLet() ast.Stmt {
	kw, _ := p.expect(token.KwLet)
	name, _ := p.expect(token.Ident)
	stmt := &ast.LetStmt{NameSpan: name.Span, Name: name.Text}
	if _, ok := p.eat(token.Colon); ok {
		stmt.Type = p.parseTypeExpr()
	}
	if _, ok := p.expect(token.Assign); ok {
		stmt.Init = p.parseExpr()
	}
	semi, _ := p.expect(token.Semicolon)
	stmt.Span = kw.Span.Cover(semi.Span)
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	kw, _ := p.expect(token.KwReturn)
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) {
		stmt.Value = p.parseExpr()
	}
	semi, _ := p.expect(token.Semicolon)
	stmt.Span = kw.Span.Cover(semi.Span)
	return stmt
}

func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	start := p.peek().Span
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	if _, ok := p.eat(token.Assign); ok {
		value := p.parseExpr()
		semi, _ := p.expect(token.Semicolon)
		return &ast.AssignStmt{Span: start.Cover(semi.Span), Target: expr, Value: value}
	}
	semi, _ := p.expect(token.Semicolon)
	return &ast.ExprStmt{Span: start.Cover(semi.Span), Value: expr}
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

var binaryPrecedence = map[token.Kind]int{
	token.Eq:    1,
	token.Plus:  2,
	token.Minus: 2,
	token.Star:  3,
	token.Slash: 3,
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnaryPostfix()
	for {
		prec, ok := binaryPrecedence[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Span: left.ExprSpan().Cover(right.ExprSpan()), Op: op.Kind, Left: left, Right: right}
	}
}

func (p *Parser) parseUnaryPostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			name, _ := p.expect(token.Ident)
			expr = &ast.MemberExpr{Span: expr.ExprSpan().Cover(name.Span), Target: expr, Name: name.Text, NameSpan: name.Span}
		case p.at(token.LParen):
			p.advance()
			args := list(p, token.Comma, token.RParen, func() (ast.Expr, bool) {
				e := p.parseExpr()
				return e, e != nil
			})
			rp, _ := p.expect(token.RParen)
			expr = &ast.CallExpr{Span: expr.ExprSpan().Cover(rp.Span), Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.peek()
	switch t.Kind {
	case token.Ident, token.KwThis:
		p.advance()
		return &ast.IdentExpr{Span: t.Span, Name: t.Text}
	case token.IntLiteral:
		p.advance()
		return &ast.IntLit{Span: t.Span, Value: t.Text}
	case token.FloatLiteral:
		p.advance()
		return &ast.FloatLit{Span: t.Span, Value: t.Text}
	case token.StringLiteral:
		p.advance()
		return &ast.StringLit{Span: t.Span, Value: t.Text}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{Span: t.Span, Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{Span: t.Span, Value: false}
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner
	default:
		p.errorAt(t.Span, fmt.Sprintf("expected an expression, found %s", t.Kind))
		return &ast.IdentExpr{Span: t.Span, Name: ""}
	}
}
