// Package ticker provides the core of a small stock ticker: a device with a
// two-row, 16-column character display that watches up to ten instruments.
//
// The core functionalities include:
//   - Watch List: an ordered list of records (symbol, threshold, signal
//     direction) with uniqueness and capacity rules, held by a Board.
//   - Persistence: every mutation is written through to a fixed-size
//     non-volatile region using a byte-exact layout (see Encode and Decode),
//     so the list and the interval settings survive power cycles.
//   - Price Cache: the last known price of every record, with a transient
//     status indicator, refreshed one symbol at a time through a Fetcher.
//   - Signal: GlyphFor classifies a price against its threshold into an arrow
//     and an optional star marking a buying opportunity.
//   - Display Rotation: a window of two records, advanced one row at a time
//     on a timer independent from the refresh cycle.
//
// A Scheduler drives both periodic activities from a single goroutine. The
// moex package provides a Fetcher for the Moscow Exchange, the web package the
// request layer that mutates the board, and the cmd package the CLI.
package ticker
