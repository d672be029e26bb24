package agent

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"tradegains"
	"tradegains/date"
)

func testAnalysis() *tradegains.Analysis {
	return &tradegains.Analysis{
		Window: date.Range{From: date.New(2025, 1, 2), To: date.New(2025, 3, 31)},
		Positions: map[string]*tradegains.Position{
			"AAPL": {Symbol: "AAPL", Quantity: decimal.NewFromInt(10), AvgCost: decimal.NewFromInt(100)},
		},
		External: []tradegains.CashFlow{
			{Date: date.New(2025, 1, 2), Amount: decimal.NewFromInt(-1000)},
		},
		TWR: tradegains.ReturnResult{Method: tradegains.TimeWeighted, Value: 12.5},
	}
}

func TestAnalysisFunctions(t *testing.T) {
	lib := NewLibrary(analysisFunctions(testAnalysis()))

	cases := []struct{ name, want string }{
		{"PerformanceReport", "Time-Weighted (cumulative)"},
		{"Holdings", "AAPL"},
		{"CashFlows", "deposit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: tc.name})
			out, ok := resp.Response["output"].(string)
			if !ok {
				t.Fatalf("no output in response: %v", resp.Response)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("%s output missing %q:\n%s", tc.name, tc.want, out)
			}
		})
	}
}

func TestLibraryUnknownFunction(t *testing.T) {
	lib := NewLibrary(analysisFunctions(testAnalysis()))

	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "Nope"})
	msg, ok := resp.Response["error"].(string)
	if !ok || !strings.Contains(msg, "unknown function") {
		t.Errorf("want unknown-function error, got %v", resp.Response)
	}
}

func TestNewAgentDeclaresExperts(t *testing.T) {
	a := New(io.Discard, strings.NewReader(""), NewAnalyst(testAnalysis()), NewResearcher())

	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	want := []string{"Analyst", "Researcher"}
	if len(names) != len(want) {
		t.Fatalf("declared experts: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("declared experts: got %v, want %v", names, want)
		}
	}
}
