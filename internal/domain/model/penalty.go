package model

// PenaltyCodes is the fixed code universe of the current statbook template,
// in the order tendencies are reported. Update this table, and only this
// table, when the template changes.
var PenaltyCodes = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "L", "M", "N", "P", "X"}
