// Package edit implements a line-oriented editing engine.
//
// A Context holds an ordered sequence of lines, each carrying its own
// terminator, and a cursor addressing one of them by its 1-based line number.
// Commands transform a Context into a new one or fail with an
// *InvalidOperation. Range endpoints are expressed as LineResolvers, which are
// evaluated against the Context at the moment the owning command runs: a
// literal Line, any navigation command, or a Search.
//
// Commands are immutable values. Builder methods such as FromRange, Times,
// EveryTime and InReverse return a new configured command, so the same value
// can be applied to any number of Contexts.
//
//	out, err := edit.Run(
//		edit.Append("first\nsecond\nthird"),
//		edit.Delete().FromRange(edit.Search("first"), edit.Line(2)),
//	)
package edit
