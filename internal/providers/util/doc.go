// Package util implements the utilities capability: backend-free
// helpers for time and duration handling.
package util
