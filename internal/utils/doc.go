// Package utils provides small helpers shared by the sync engine: JSON
// response writing, the resty client wrapper, bearer token inspection,
// operation identifiers and context-carried sync triggers.
package utils
