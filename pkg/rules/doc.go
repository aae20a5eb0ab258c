// Package rules loads declarative field-sum rules from YAML or JSON files and
// evaluates them against decoded documents or Go values.
//
// A rule file lists the fields to check:
//
//	rules:
//	  - field: total
//	    display_name: Total amount
//	    gte_sum: [subtotal, tax, shipping]
//	  - field: capacity
//	    gte_sum: booked
//
// gte_sum accepts a single name or a list. Every definition is checked when
// the Engine is built, so a rule with an empty field or reference never
// reaches evaluation.
//
// Failure messages come from an embedded catalog (locales/*.yaml) rendered
// through pkg/i18n in the locale stored on the context:
//
//	engine, err := rules.NewEngine(ctx, set)
//	report, err := engine.Validate(i18n.SetLocale(ctx, "de"), subject)
//
// Validate always returns a full Report; its error is
// validator.ValidationErrors when any rule fails.
package rules
