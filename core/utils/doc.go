// Package utils provides small helpers shared by the reconciliation packages:
// numeric parsing of exported field values, text normalization and nullable
// string helpers.
package utils
