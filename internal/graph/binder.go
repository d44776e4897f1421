package graph

// Binder turns caller supplied parameters into the driver's parameter map.
// Values are never interpolated into the query text; substitution is left to
// the database.
type Binder interface {
	Bind(params map[string]string) map[string]any
}

// StringBinder binds every value as a string parameter.
type StringBinder struct{}

func (StringBinder) Bind(params map[string]string) map[string]any {
	return Bind(params)
}

// Bind wraps each value as a string-typed driver parameter. A nil input
// yields an empty map.
func Bind(params map[string]string) map[string]any {
	bound := make(map[string]any, len(params))
	for k, v := range params {
		bound[k] = v
	}
	return bound
}
