// Package util holds small helpers shared by the config and handler code.
package util
