// Package models defines the core domain models for wispgen.
//
// # Models
//
//   - Wisp: a completed questionnaire, persisted once the wizard finishes
//   - Answers: the flat mapping of field name to typed Value
//   - Value: a single answer, either a string or a boolean
//
// # Design Principles
//
// 1. **Schema lives elsewhere**: the set of valid field names and their kinds
// is defined by the step definitions in package steps, not by these types.
// 2. **Loadable even when malformed**: answers decode from any JSON so a bad
// stored value is reported at render time instead of hiding the whole record.
// 3. **No pointers between records**: relationships use ID strings.
package models
