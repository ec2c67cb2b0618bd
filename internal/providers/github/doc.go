// Package github implements the repositories capability for one GitHub
// repository using the go-github SDK.
package github
