package agent

import (
	"context"

	"google.golang.org/genai"

	"tradegains"
	"tradegains/report"
)

const model = "gemini-2.5-pro"

// newFacilitator builds the expert that fronts the conversation. The
// other experts are its tools.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You comment on the user's brokerage performance analysis.

			Learn each expert's skill from the Tools and ask them questions.
			They are dedicated to you and keep the context of your previous
			questions.

			Start from the performance report: the analyst holds it, along
			with the holdings table and the cash-flow series. Returns come in
			two flavors, time-weighted (how the holdings performed, deposits
			backed out) and money-weighted (what the user's dollars earned);
			a gap between them is explained by contribution timing.

			Quote concrete figures from the report rather than generalities,
			and say plainly when a figure is marked unavailable.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst builds the expert holding one analysis run. Its functions
// read the rendered report, holdings and cash flows.
func NewAnalyst(a *tradegains.Analysis) *Expert {
	functions := analysisFunctions(a)
	return &Expert{
		Name: "Analyst",
		Description: `The analyst holds the user's trade analysis: the performance
		report, the current holdings and the external cash flows. Ask for the
		figures before answering anything about the user's results.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(functions)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the analyst for one brokerage account. Use the available
			tools to read the performance report, the holdings table and the
			cash-flow series, and answer precisely from them. When a figure
			is marked unavailable, say so rather than estimating it.
		`}}},
		},
		Library: NewLibrary(functions),
	}
}

// NewResearcher builds the market-context expert, grounded on web search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `The researcher knows current market context. It searches the
		web for news about tickers, funds and the wider market. Ask whenever
		recent or external information is needed.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You research financial markets. Use Google Search to ground every
			claim about companies, funds and market moves, and relate what
			you find to the tickers you are asked about.
		`}}},
		},
	}
}

// Func is a Function built from a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// analysisFunctions exposes one analysis run as callable tools. All
// three render on demand so the model always sees the same markdown the
// user does.
func analysisFunctions(a *tradegains.Analysis) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name: "PerformanceReport",
				Description: `The full performance report: analysis window, time- and
				money-weighted returns, risk figures, benchmark comparison, open
				positions, cash-flow summary and data warnings.`,
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown report.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "PerformanceReport", report.Markdown(a))
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name: "Holdings",
				Description: `Every traded symbol with its net quantity, average cost
				and cost basis. Closed positions are listed with a zero quantity.`,
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of positions.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "Holdings", report.HoldingsMarkdown(a.Positions))
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name: "CashFlows",
				Description: `The dated external cash flows (deposits and withdrawals)
				the money-weighted return is computed against.`,
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of cash flows.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "CashFlows", report.FlowsMarkdown(a.External))
			},
		},
	}
}
