package contract

import (
	"testing"

	"go.llib.dev/testcase"
)

// Make func meant to create a new instance of the testing subject.
//
// When a contract requires multiple dependencies and simple option idioms aren't sufficient,
// a "XXXSubject" struct can gather them as fields,
// letting a single Make function set up each testing case within a contract.
type Make[Subject any] = func(tb testing.TB) Subject

// Contract represents a resource specification also known as "contract".
//
// Any expectation from a consumer towards a used dependency should be defined
// in a contract, so the expectations stay at the behavioral level and every
// supplier implementation can be validated against the very same suite.
type Contract interface {
	testcase.Suite
	// Test is the function that asserts the expected behavioral requirements on a supplier implementation.
	Test(*testing.T)
	// Benchmark will help with what to measure.
	Benchmark(*testing.B)
}
