// Copyright 2016 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package filter

import "strings"

// This file contains the tree-walking evaluator.  Evaluation is pure:
// it never mutates the tree or the record, and the same tree evaluated
// against the same record always produces the same result.  The
// surrounding collection scan depends on that determinism for stable
// pagination.

// evaluate walks one node against one record and produces a boolean
// inclusion decision.  The switch is exhaustive over the node
// variants; any other type is a programming error.
func evaluate(node Node, record map[string]interface{}) (bool, error) {
	switch n := node.(type) {
	case *Comparison:
		return evaluateComparison(n, record)
	case *LogicalBinary:
		left, err := evaluate(n.Left, record)
		if err != nil {
			return false, err
		}
		// Short-circuit: "and" skips its right operand on a
		// false left, "or" on a true left.
		if n.Op == OpAnd && !left {
			return false, nil
		}
		if n.Op == OpOr && left {
			return true, nil
		}
		return evaluate(n.Right, record)
	case *LogicalNot:
		result, err := evaluate(n.Operand, record)
		if err != nil {
			return false, err
		}
		return !result, nil
	}
	panic("unhandled filter node type")
}

func evaluateComparison(cmp *Comparison, record map[string]interface{}) (bool, error) {
	value, present := lookup(record, cmp.Left.Path)
	switch cmp.Op {
	case OpEq:
		return present && valuesEqual(value, cmp.Right.Value), nil
	case OpNe:
		return !present || !valuesEqual(value, cmp.Right.Value), nil
	}
	return evaluateOrdering(cmp, value, present)
}

func evaluateOrdering(cmp *Comparison, value interface{}, present bool) (bool, error) {
	// Ordering against nothing is false, not an error; collection
	// scans must stay resilient to heterogeneous records.
	if !present {
		return false, nil
	}

	var ord int
	switch lit := cmp.Right.Value.(type) {
	case float64:
		num, ok := AsNumber(value)
		if !ok {
			return false, evalError(cmp, "field value is not a number")
		}
		ord = compareFloats(num, lit)
	case string:
		s, ok := value.(string)
		if !ok {
			return false, evalError(cmp, "field value is not a string")
		}
		ord = strings.Compare(s, lit)
	default:
		return false, evalError(cmp, "operator requires a numeric or string literal")
	}

	switch cmp.Op {
	case OpGt:
		return ord > 0, nil
	case OpGe:
		return ord >= 0, nil
	case OpLt:
		return ord < 0, nil
	case OpLe:
		return ord <= 0, nil
	}
	panic("unhandled comparison operator")
}

func evalError(cmp *Comparison, message string) error {
	return EvaluationError{
		Op:      cmp.Op,
		Field:   cmp.Left.String(),
		Message: message,
	}
}

// lookup resolves a field path against a record by walking successive
// segments.  If any intermediate segment is absent or is not itself a
// nested map, the result is absent.
func lookup(record map[string]interface{}, path []string) (interface{}, bool) {
	var value interface{} = record
	for _, segment := range path {
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

// valuesEqual implements type-aware equality.  Numbers compare across
// integer widths, null is equal only to null, and any cross-type
// comparison is simply unequal, never an error.
func valuesEqual(value interface{}, literal interface{}) bool {
	switch lit := literal.(type) {
	case nil:
		return value == nil
	case string:
		s, ok := value.(string)
		return ok && s == lit
	case bool:
		b, ok := value.(bool)
		return ok && b == lit
	case float64:
		num, ok := AsNumber(value)
		return ok && num == lit
	}
	return false
}

// AsNumber widens any of the numeric types that show up in decoded
// records to float64.  JSON decoding produces float64, but records
// built in Go code routinely carry int values.  The second return is
// false for non-numeric values.  This is the evaluator's own notion of
// "numeric"; the collection sorting helpers share it so that filtering
// and sorting never disagree about what a number is.
func AsNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
