package voicespec

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var errNotFinite = errors.New("value is not finite")

type tokenKind int

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
	tokPipe
	tokEquals
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

// lex splits an already whitespace-free spec into tokens. Runs of characters
// other than ( ) | = become a single text token.
func lex(s string) []token {
	var toks []token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, token{kind: tokText, text: s[start:end]})
			start = -1
		}
	}
	for i, r := range s {
		kind := tokText
		switch r {
		case '(':
			kind = tokOpen
		case ')':
			kind = tokClose
		case '|':
			kind = tokPipe
		case '=':
			kind = tokEquals
		}
		if kind == tokText {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		toks = append(toks, token{kind: kind, text: string(r)})
	}
	flush(len(s))
	return append(toks, token{kind: tokEOF})
}

type parser struct {
	input string
	toks  []token
	pos   int
}

// Parse turns a voice spec into a Spec. All whitespace is removed before
// parsing, including whitespace inside values.
func Parse(input string) (Spec, error) {
	p := &parser{input: input, toks: lex(stripSpace(input))}
	return p.parse()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(reason string) error {
	return &ParseError{Spec: p.input, Reason: reason}
}

func (p *parser) parse() (Spec, error) {
	var spec Spec

	name := p.next()
	if name.kind != tokText {
		return Spec{}, p.fail("voice name is required")
	}
	spec.Name = name.text

	switch t := p.next(); t.kind {
	case tokEOF:
		return spec, nil
	case tokOpen:
	default:
		return Spec{}, p.fail("unexpected " + strconv.Quote(t.text) + " after voice name")
	}

	for {
		switch p.peek().kind {
		case tokEOF:
			return spec, nil
		case tokClose:
			p.next()
			if t := p.next(); t.kind != tokEOF {
				return Spec{}, p.fail("unexpected " + strconv.Quote(t.text) + " after parameter list")
			}
			return spec, nil
		case tokPipe:
			// empty parameter
			p.next()
			continue
		}

		key, value, err := p.param()
		if err != nil {
			return Spec{}, err
		}
		if err := spec.Overrides.set(key, value); err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Spec = p.input
			}
			return Spec{}, err
		}

		switch t := p.peek(); t.kind {
		case tokPipe:
			p.next()
		case tokClose, tokEOF:
		default:
			return Spec{}, p.fail("unexpected " + strconv.Quote(t.text) + " in parameter list")
		}
	}
}

// param reads key=value. The value extends to the next | or ) and may itself
// contain '='.
func (p *parser) param() (string, string, error) {
	key := p.next()
	if key.kind != tokText {
		return "", "", p.fail("parameter key is required")
	}
	if eq := p.next(); eq.kind != tokEquals {
		return "", "", &ParseError{Spec: p.input, Key: key.text, Reason: "parameter is missing '='"}
	}

	var b strings.Builder
	for {
		switch t := p.peek(); t.kind {
		case tokText, tokEquals:
			b.WriteString(p.next().text)
		case tokOpen:
			return "", "", p.fail("unexpected \"(\" in parameter list")
		default:
			return key.text, b.String(), nil
		}
	}
}

func (o *Overrides) set(key, value string) error {
	switch key {
	case KeyStability:
		return parseFloatInto(&o.Stability, key, value)
	case KeySimilarityBoost:
		return parseFloatInto(&o.SimilarityBoost, key, value)
	case KeyStyle:
		return parseFloatInto(&o.Style, key, value)
	case KeySpeed:
		return parseFloatInto(&o.Speed, key, value)
	case KeyUseSpeakerBoost:
		b := parseBool(value)
		o.UseSpeakerBoost = &b
	default:
		if o.Extra == nil {
			o.Extra = make(map[string]string)
		}
		o.Extra[key] = value
	}
	return nil
}

func parseFloatInto(target **float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return &ParseError{Key: key, Value: value, Reason: "value is not a number", Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &ParseError{Key: key, Value: value, Reason: "value is not a number", Err: errNotFinite}
	}
	*target = &f
	return nil
}

// parseBool accepts true, 1 and yes (any case). Anything else is false.
func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
