package result

import (
	"testing"

	"github.com/go-schematron/schematron/ast"
)

func TestCheckResultIsFailurePolarityTable(t *testing.T) {
	tests := []struct {
		name       string
		check      ast.Check
		testResult bool
		wantFail   bool
	}{
		{"passing assert produces no event", ast.Assert{}, true, false},
		{"failing assert produces failed-assert", ast.Assert{}, false, true},
		{"non-firing report produces no event", ast.Report{}, false, false},
		{"firing report produces successful-report", ast.Report{}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := CheckResult{Check: tt.check, TestResult: tt.testResult}
			if got := cr.IsFailure(); got != tt.wantFail {
				t.Errorf("IsFailure() = %v, want %v", got, tt.wantFail)
			}
		})
	}
}
