// Package util provides small generic helpers shared by the toolkit,
// mostly at the CLI boundary.
package util
