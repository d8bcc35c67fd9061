package assert

import "bytes"

// Equal checks whether expected and actual are actually equal and fails the test
// if they are not.
func Equal[V comparable](t TestingErrf, expected, actual V, msgAndArgs ...any) {
	t.Helper()

	if expected == actual {
		return
	}

	t.Errorf("not equal: expected `%#v` but got `%#v`%s",
		expected, actual, fromMsgAndArgs(msgAndArgs...),
	)
}

// BytesEqual is Equal for byte slices. Only the lengths are printed on failure
// since the slices are usually image data.
func BytesEqual(t TestingErrf, expected, actual []byte, msgAndArgs ...any) {
	t.Helper()

	if bytes.Equal(expected, actual) {
		return
	}

	t.Errorf("bytes differ: expected %d bytes but got %d different ones%s",
		len(expected), len(actual), fromMsgAndArgs(msgAndArgs...),
	)
}
