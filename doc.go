// Package tradegains computes investment performance from brokerage trade
// exports. It is designed to be local-first and reproducible: the same
// inputs always produce the same numbers, and every figure can be traced
// back to the trades that produced it.
//
// The core functionalities include:
//   - Trade Normalization: Turning raw broker order rows into signed
//     trades with a uniform cash-flow convention (buys negative, sells
//     positive, fees folded in).
//   - Position Aggregation: Folding trades chronologically into per-symbol
//     positions with weighted-average cost, and into a dated series of
//     external cash flows.
//   - Valuation: Building a daily mark-to-market series for the whole
//     portfolio from historical closing prices, carrying the last known
//     price forward and never looking ahead.
//   - Return Calculation: Time-weighted returns by sub-period chaining and
//     money-weighted returns by solving the internal rate of return.
//   - Benchmark Comparison: A buy-and-hold benchmark curve on the same
//     date grid, plus volatility, drawdown and Sharpe figures.
//
// This package serves as the foundational logic for the `tg` command-line
// tool; it performs no I/O of its own beyond the price source it is handed.
package tradegains
