package ty

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a type written in the syntax produced by String.
func Parse(src string) (Ty, error) {
	p := &parser{toks: lex(src), src: src}
	if p.err != nil {
		return nil, p.err
	}
	t := p.parseTy()
	if p.err == nil && p.peek().kind != tokEOF {
		p.fail("unexpected %q after type", p.peek().text)
	}
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

// MustParse is Parse for literals known to be well formed.
func MustParse(src string) Ty {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokInt
	tokLifetime
	tokArrow
	tokPunct
	tokBad
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func lex(src string) []token {
	var toks []token
	i := 0
	for i < len(src) {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '-' && i+1 < len(src) && src[i+1] == '>':
			toks = append(toks, token{kind: tokArrow, text: "->", pos: i})
			i += 2
		case c == '\'':
			j := i + 1
			for j < len(src) && isIdentRune(rune(src[j])) {
				j++
			}
			if j == i+1 {
				toks = append(toks, token{kind: tokBad, text: "'", pos: i})
			} else {
				toks = append(toks, token{kind: tokLifetime, text: src[i+1 : j], pos: i})
			}
			i = j
		case unicode.IsDigit(c):
			j := i
			for j < len(src) && unicode.IsDigit(rune(src[j])) {
				j++
			}
			toks = append(toks, token{kind: tokInt, text: src[i:j], pos: i})
			i = j
		case isIdentRune(c):
			j := i
			for j < len(src) && isIdentRune(rune(src[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], pos: i})
			i = j
		case strings.ContainsRune("()[]<>{};,&*!?^#.+", c):
			toks = append(toks, token{kind: tokPunct, text: string(c), pos: i})
			i++
		default:
			toks = append(toks, token{kind: tokBad, text: string(c), pos: i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)})
}

func isIdentRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

type parser struct {
	src  string
	toks []token
	pos  int
	err  error
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("parse %q at offset %d: %s", p.src, p.peek().pos, fmt.Sprintf(format, args...))
	}
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) accept(s string) bool {
	if p.isPunct(s) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(s string) {
	if !p.accept(s) {
		p.fail("expected %q, found %q", s, p.peek().text)
	}
}

func (p *parser) expectInt() int64 {
	t := p.peek()
	if t.kind != tokInt {
		p.fail("expected integer, found %q", t.text)
		return 0
	}
	p.next()
	n, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		p.fail("bad integer %q", t.text)
	}
	return n
}

func (p *parser) expectIdent() string {
	t := p.peek()
	if t.kind != tokIdent {
		p.fail("expected identifier, found %q", t.text)
		return ""
	}
	p.next()
	return t.text
}

func (p *parser) parseTy() Ty {
	if p.err != nil {
		return nil
	}
	t := p.peek()
	switch t.kind {
	case tokPunct:
		return p.parsePunctTy()
	case tokIdent:
		return p.parseNamedTy()
	default:
		p.fail("expected a type, found %q", t.text)
		return nil
	}
}

func (p *parser) parsePunctTy() Ty {
	switch tok := p.next(); tok.text {
	case "(":
		var elems []Ty
		trailing := false
		for !p.isPunct(")") && p.err == nil {
			elems = append(elems, p.parseTy())
			trailing = p.accept(",")
			if !trailing {
				break
			}
		}
		p.expect(")")
		if len(elems) == 1 && !trailing {
			return elems[0]
		}
		return Tuple(elems...)
	case "[":
		elem := p.parseTy()
		if p.accept(";") {
			n := p.expectInt()
			p.expect("]")
			return Array(elem, n)
		}
		p.expect("]")
		return Apply{Name: SliceName{}, Subst: Substitution{elem}}
	case "&":
		lt := Lifetime{Name: "_"}
		if p.peek().kind == tokLifetime {
			lt = Lifetime{Name: p.next().text}
		}
		m := Not
		if p.peek().kind == tokIdent && p.peek().text == "mut" {
			p.next()
			m = Mut
		}
		return Apply{Name: RefName{Mutability: m}, Subst: Substitution{lt, p.parseTy()}}
	case "*":
		switch p.expectIdent() {
		case "const":
			return RawTy(Not, p.parseTy())
		case "mut":
			return RawTy(Mut, p.parseTy())
		default:
			p.fail("raw pointer needs const or mut")
			return nil
		}
	case "!":
		if p.peek().kind == tokInt {
			u := p.expectInt()
			p.expect(".")
			return Placeholder{Universe: int(u), Index: int(p.expectInt())}
		}
		return Apply{Name: NeverName{}}
	case "?":
		idx := p.expectInt()
		if idx > math.MaxUint32 {
			p.fail("inference variable index %d out of range", idx)
		}
		kind := General
		if p.peek().kind == tokIdent {
			switch p.peek().text {
			case "i":
				kind = Integer
			case "f":
				kind = Float
			default:
				p.fail("unknown inference variable suffix %q", p.peek().text)
			}
			p.next()
		}
		return InferenceVar{Index: uint32(idx), Kind: kind}
	case "^":
		d := p.expectInt()
		p.expect(".")
		return BoundVar{Debruijn: int(d), Index: int(p.expectInt())}
	case "{":
		if p.expectIdent() != "error" {
			p.fail("only {error} is accepted in braces")
		}
		p.expect("}")
		return Apply{Name: ErrorName{}}
	default:
		p.fail("unexpected %q", tok.text)
		return nil
	}
}

func (p *parser) parseNamedTy() Ty {
	word := p.expectIdent()
	if s, ok := ScalarByName(word); ok {
		return ScalarTy(s)
	}
	switch word {
	case "str":
		return Apply{Name: StrName{}}
	case "fnptr":
		return Apply{Name: FnPointerName{}, Subst: p.parseGenerics()}
	case "fn":
		return p.parseFn(0)
	case "for":
		p.expect("<")
		n := p.expectInt()
		p.expect(">")
		if p.expectIdent() != "fn" {
			p.fail("for<..> must be followed by fn")
		}
		return p.parseFn(int(n))
	case "dyn":
		traits := []TraitID{TraitID(p.expectIdent())}
		for p.accept("+") {
			traits = append(traits, TraitID(p.expectIdent()))
		}
		return Dyn{Traits: traits}
	}

	if p.accept("#") {
		id := p.expectIdent()
		var subst Substitution
		if word != "foreign" {
			subst = p.parseGenerics()
		}
		switch word {
		case "fndef":
			return Apply{Name: FnDefName{ID: FnDefID(id)}, Subst: subst}
		case "closure":
			return Apply{Name: ClosureName{ID: ClosureID(id)}, Subst: subst}
		case "assoc":
			return Apply{Name: AssociatedTypeName{ID: AssocTypeID(id)}, Subst: subst}
		case "opaque":
			return Apply{Name: OpaqueTypeName{ID: OpaqueID(id)}, Subst: subst}
		case "foreign":
			return Apply{Name: ForeignName{ID: ForeignID(id)}}
		case "generator":
			return Apply{Name: GeneratorName{ID: GeneratorID(id)}, Subst: subst}
		case "witness":
			return Apply{Name: GeneratorWitnessName{ID: GeneratorID(id)}, Subst: subst}
		case "alias":
			return Alias{ID: AliasID(id), Subst: subst}
		default:
			p.fail("unknown item kind %q", word)
			return nil
		}
	}
	return Apply{Name: AdtName{ID: AdtID(word)}, Subst: p.parseGenerics()}
}

func (p *parser) parseFn(binders int) Ty {
	p.expect("(")
	var subst Substitution
	for !p.isPunct(")") && p.err == nil {
		subst = append(subst, p.parseTy())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	if p.peek().kind == tokArrow {
		p.next()
		subst = append(subst, p.parseTy())
	} else {
		subst = append(subst, Unit())
	}
	return Function{NumBinders: binders, Subst: subst}
}

func (p *parser) parseGenerics() Substitution {
	if !p.accept("<") {
		return nil
	}
	var subst Substitution
	for !p.isPunct(">") && p.err == nil {
		subst = append(subst, p.parseArg())
		if !p.accept(",") {
			break
		}
	}
	p.expect(">")
	return subst
}

func (p *parser) parseArg() GenericArg {
	switch t := p.peek(); t.kind {
	case tokLifetime:
		p.next()
		return Lifetime{Name: t.text}
	case tokInt:
		return Const{Value: p.expectInt()}
	default:
		return p.parseTy()
	}
}

func splitTopLevel(src string) []string {
	fields := strings.Split(src, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
