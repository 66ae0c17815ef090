package ast

// Operator represents the mutation intent of a node, property or path segment.
type Operator string

const (
	OperatorInsert              Operator = "insert"                // no glyph
	OperatorEdit                Operator = "edit"                  // @
	OperatorCopy                Operator = "copy"                  // + or $
	OperatorDelete              Operator = "delete"                // - or !
	OperatorEditOrCreate        Operator = "edit_or_create"        // %
	OperatorCreate              Operator = "create"                // &
	OperatorRename              Operator = "rename"                // | (properties only)
	OperatorPathRelative        Operator = "path_relative"         // path segment without @
	OperatorPathRoot            Operator = "path_root"             // path segment with @
	OperatorParentNode          Operator = "parent_node"           // .. path segment
	OperatorExternalValueAccess Operator = "external_value_access" // *path = value
)

// Glyph returns the canonical source glyph for the operator. Operators that
// have no glyph of their own (insert, relative path segments, parent
// segments) return an empty string.
func (o Operator) Glyph() string {
	switch o {
	case OperatorEdit, OperatorPathRoot:
		return "@"
	case OperatorCopy:
		return "+"
	case OperatorDelete:
		return "!"
	case OperatorEditOrCreate:
		return "%"
	case OperatorCreate:
		return "&"
	case OperatorRename:
		return "|"
	case OperatorExternalValueAccess:
		return "*"
	default:
		return ""
	}
}

// AssignmentOperator represents how a property value is combined with the
// existing value.
type AssignmentOperator string

const (
	AssignmentAssign       AssignmentOperator = "="
	AssignmentAdd          AssignmentOperator = "+="
	AssignmentSubtract     AssignmentOperator = "-="
	AssignmentMultiply     AssignmentOperator = "*="
	AssignmentDivide       AssignmentOperator = "/="
	AssignmentPower        AssignmentOperator = "!="
	AssignmentRegexReplace AssignmentOperator = "^="
)

// IsArithmetic returns true for every assignment operator except the
// regex replacement, which external value access does not accept.
func (a AssignmentOperator) IsArithmetic() bool {
	return a != AssignmentRegexReplace && a != ""
}
