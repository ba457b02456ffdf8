//go:build tools

package tools

// Development tools. Not compiled into any binary.
//
//   - github.com/matryer/moq: regenerates the *_mock_test.go fakes
//     (tokenizer, completer, oracle, lexicon source, HTTP service mocks).
//   - github.com/pressly/goose/v3/cmd/goose: applies migrations/ by hand;
//     cmd/lexicon-import and the server run them automatically.
