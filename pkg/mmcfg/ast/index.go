package ast

import "strconv"

// Index selects one element of a sequence of same-named siblings. A nil
// Value is the wildcard and matches every position.
type Index struct {
	Value *int
}

// Satisfies reports whether position (0-based) is selected in a sequence of
// total elements. Negative values count from the end.
func (i *Index) Satisfies(position, total int) bool {
	if i.Value == nil {
		return true
	}
	v := *i.Value
	if v >= 0 {
		return position == v
	}
	return position == v+total
}

func (i *Index) String() string {
	if i.Value == nil {
		return ",*"
	}
	return "," + strconv.Itoa(*i.Value)
}

// DefaultArraySeparator is used when an array index names no separator.
const DefaultArraySeparator = ','

// ArrayIndex selects a token within a separator-delimited property value.
// A nil Value is the wildcard.
type ArrayIndex struct {
	Value     *int
	Separator rune
}

func (a *ArrayIndex) String() string {
	value := "*"
	if a.Value != nil {
		value = strconv.Itoa(*a.Value)
	}
	if a.Separator == DefaultArraySeparator {
		return "[" + value + "]"
	}
	return "[" + value + "," + string(a.Separator) + "]"
}
