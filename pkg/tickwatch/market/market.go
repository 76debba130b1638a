// Package market queries Yahoo Finance for the enrichment data that the
// quote page does not carry: the annual balance sheet and the five-year
// price history, plus the live quote used for table coloring.
package market

// FieldResult carries one enrichment field's outcome. Failures stay
// visible here and are collapsed to the sentinel only when the record is
// assembled.
type FieldResult struct {
	Value string
	Err   error
}

// Or returns the value, or sentinel when the lookup failed or was empty.
func (r FieldResult) Or(sentinel string) string {
	if r.Err != nil || r.Value == "" {
		return sentinel
	}
	return r.Value
}

// Ok reports whether the field resolved to a value.
func (r FieldResult) Ok() bool { return r.Err == nil && r.Value != "" }

func value(v string) FieldResult { return FieldResult{Value: v} }
func failure(err error) FieldResult { return FieldResult{Err: err} }
