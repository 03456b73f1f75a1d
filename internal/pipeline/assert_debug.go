//go:build eqdebug

package pipeline

const debugAssertions = true
