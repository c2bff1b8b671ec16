// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return fmt.Sprintf("exit %d", e.code) }
func (e *codedError) ExitCode() int { return e.code }

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"success", nil, 0, ""},
		{"plain error", errors.New("no such document"), 1, "error: no such document\n"},
		{"exit coder", &codedError{code: 3}, 3, ""},
		{"wrapped exit coder", fmt.Errorf("config check: %w", &codedError{code: 2}), 2, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			if code := report(&output, test.err); code != test.wantCode {
				t.Errorf("report() = %d, want %d", code, test.wantCode)
			}
			if output.String() != test.wantText {
				t.Errorf("output = %q, want %q", output.String(), test.wantText)
			}
		})
	}
}
