// Package validator implements declarative field-sum validation: a numeric
// field must be greater than or equal to the sum of one or more sibling fields
// on the same object.
//
// Every check is expressed as a Rule holding a Check func and
// translation-friendly error metadata. Apply aggregates failing rules into
// ValidationErrors, which satisfies the error interface.
//
// # Subjects
//
// Field lookup goes through the Subject interface. Three adapters ship with
// the package:
//
//   - Accessors[T]: an explicit accessor table built once per type
//   - Map: a decoded document such as JSON or YAML
//   - Struct: reflection over exported fields and json tags
//
// # Usage
//
//	totals := validator.MustFieldSumComparator("Subtotal", "Tax")
//
//	err := validator.Apply(
//	    totals.Rule("Total", "Total amount", inv.Total, invoiceFields.Bind(inv)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs[0].Code is one of unknown_property, null_property, gte_sum, ...
//	}
//
// # Outcomes
//
// Evaluate returns an Outcome tagged with a Reason. References resolve in
// order and the first unknown or null field wins; the comparison is inclusive
// and runs over int64 with an explicit overflow check. A null or non-integer
// target value is reported as ReasonInvalidTarget.
//
// Comparators hold no mutable state and are safe for concurrent use.
package validator
