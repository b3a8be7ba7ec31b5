// internal/iecaddr/doc.go

/*
Package iecaddr provides a structured representation of IEC 61131-3 directly
represented variable addresses, as generated from location templates.

The canonical format is `%` followed by the location type letter (I, Q, M),
the data type letter (X, B, W, D, L, S) and a dot-separated path of segments,
e.g., `%IX1.3` or `%QW4.0.9`.

The same address is also rendered as a variable identifier (`_IX1_3`) and as
a bare location string without the type letter (`X1.3`).
*/
package iecaddr
