package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-pzforge/pkg/visibility"
)

// Evaluator parses toggle rules such as `perishable && replaceOnRottenEnabled`
// and evaluates them against form values.
//
// Supported syntax:
//   - truthy checks: `isCookable`
//   - comparisons: `itemType == "drainable"`, `hungerDirection != none`
//   - composition: `!a`, `a && b`, `a || (b && c)`
//
// Parsed rules are cached, so one Evaluator can be shared across submits.
type Evaluator struct {
	cache sync.Map
}

// New returns an Evaluator with an empty rule cache.
func New() *Evaluator { return &Evaluator{} }

var _ visibility.Evaluator = (*Evaluator)(nil)

// Eval reports whether rule holds for ctx.Values.
func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	node, err := e.Compile(rule)
	if err != nil {
		return false, err
	}
	if node == nil {
		return true, nil
	}
	return node.eval(ctx.Values), nil
}

// Check parses rule without evaluating it, surfacing syntax errors early.
func (e *Evaluator) Check(rule string) error {
	_, err := e.Compile(rule)
	return err
}

// Compile parses rule into an evaluable node. A blank rule yields nil.
func (e *Evaluator) Compile(rule string) (Node, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}
	if cached, ok := e.cache.Load(trimmed); ok {
		return cached.(Node), nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}

	e.cache.Store(trimmed, node)
	return node, nil
}

// Node is a parsed rule.
type Node interface {
	eval(values map[string]any) bool
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

var operators = []struct {
	text string
	kind tokenKind
}{
	{"==", tokenEq},
	{"!=", tokenNeq},
	{"&&", tokenAnd},
	{"||", tokenOr},
	{"!", tokenNot},
	{"(", tokenLParen},
	{")", tokenRParen},
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

scan:
	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		for _, op := range operators {
			if strings.HasPrefix(input[i:], op.text) {
				tokens = append(tokens, token{kind: op.kind, raw: op.text})
				i += len(op.text)
				continue scan
			}
		}

		switch ch {
		case '=', '&', '|':
			return nil, fmt.Errorf("visibility/expr: unexpected %q at offset %d", ch, i)
		case '"', '\'':
			end := strings.IndexByte(input[i+1:], ch)
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated string literal")
			}
			tokens = append(tokens, token{kind: tokenString, raw: input[i+1 : i+1+end]})
			i += end + 2
			continue
		}

		start := i
		for i < len(input) && !isSpace(input[i]) && !strings.ContainsRune("()!=&|\"'", rune(input[i])) {
			i++
		}
		raw := input[start:i]
		switch {
		case strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false"):
			tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
		case looksLikeNumber(raw):
			tokens = append(tokens, token{kind: tokenNumber, raw: raw})
		default:
			tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
		}
	}
	return tokens, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func looksLikeNumber(raw string) bool {
	if raw == "" || !strings.ContainsRune("0123456789+-.", rune(raw[0])) {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}

type exprOr struct{ left, right Node }

func (n exprOr) eval(values map[string]any) bool {
	return n.left.eval(values) || n.right.eval(values)
}

type exprAnd struct{ left, right Node }

func (n exprAnd) eval(values map[string]any) bool {
	return n.left.eval(values) && n.right.eval(values)
}

type exprNot struct{ inner Node }

func (n exprNot) eval(values map[string]any) bool {
	return !n.inner.eval(values)
}

type exprTruthy struct{ identifier string }

func (n exprTruthy) eval(values map[string]any) bool {
	return truthy(values[n.identifier])
}

type exprCompare struct {
	identifier string
	negate     bool
	literal    token
}

func (n exprCompare) eval(values map[string]any) bool {
	value := values[n.identifier]

	var equal bool
	switch n.literal.kind {
	case tokenBool:
		equal = truthy(value) == (n.literal.raw == "true")
	case tokenNumber:
		want, _ := strconv.ParseFloat(n.literal.raw, 64)
		got, ok := coerceNumber(value)
		equal = ok && got == want
	default:
		equal = coerceString(value) == n.literal.raw
	}

	if n.negate {
		return !equal
	}
	return equal
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseOr(stream *tokenStream) (Node, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (Node, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (Node, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (Node, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("visibility/expr: empty expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}

	for _, op := range []tokenKind{tokenEq, tokenNeq} {
		if !stream.match(op) {
			continue
		}
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("visibility/expr: missing literal")
		}
		lit := stream.tokens[stream.pos]
		stream.pos++
		switch lit.kind {
		case tokenString, tokenNumber, tokenBool:
		case tokenIdentifier:
			// bare words compare as strings: `hungerDirection == none`
			lit.kind = tokenString
		default:
			return nil, fmt.Errorf("visibility/expr: expected literal, got %q", lit.raw)
		}
		return exprCompare{identifier: ident.raw, negate: op == tokenNeq, literal: lit}, nil
	}

	return exprTruthy{identifier: ident.raw}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	_, ok := s.consume(kind)
	return ok
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
		return trimmed != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(value)
	}
}
