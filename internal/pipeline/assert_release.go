//go:build !eqdebug

package pipeline

// debugAssertions turns precondition violations into panics. Build with
// -tags eqdebug to enable.
const debugAssertions = false
