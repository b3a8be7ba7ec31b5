// Package locations flattens a parsed template, together with the user's
// choices for its parametrized parts, into the generic variable tree consumed
// by editors and code generators.
//
// Every group becomes a Group node whose Location is its dotted id path.
// Every location is expanded (see package expand) into one variable node per
// value tuple. Variables are addressed by the location code, the id path of
// the group that numbers them and the tuple values, e.g. %IX1.3.
//
// Static groups and locations are always present in the tree. Parametrized
// ones appear only for the Instances the user asked for.
package locations
