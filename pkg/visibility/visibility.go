package visibility

// Evaluator decides whether a field is active given a rule string and the
// values collected so far. An empty rule is always active.
type Evaluator interface {
	Eval(fieldKey, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the flat form values
// keyed by field key.
type Context struct {
	Values map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldKey, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldKey, rule string, ctx Context) (bool, error) {
	return fn(fieldKey, rule, ctx)
}
