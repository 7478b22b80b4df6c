// Package design describes how the children of a figure node are arranged
// on a grid.
//
// # Overview
//
// A [Spec] is either resolved, holding a concrete matrix of [Cell] values, or
// deferred, holding only a column/row count and a fill direction. Deferred
// specs are materialized with [Spec.Resolve] once the number of children is
// known, which lets a node declare "two columns" before its children exist.
//
// Cells are either an item index or a gap. Every non-gap index must appear in
// the contiguous range 0..NumItems()-1; an item may span several cells, and
// its footprint is the bounding box of the cells it occupies.
//
// # Text Grammar
//
// [Parse] accepts a compact text form where each letter names an item:
//
//	AAB
//	AAB
//	CC#
//
// A is item 0, B is item 1 and so on; '#' and '.' are interchangeable gaps.
// Rows must have equal length after leading/trailing blank lines and common
// indentation are removed.
//
// # Weights
//
// Relative column widths and row heights are attached with [WithRelWidths]
// and [WithRelHeights]. Unset weights are uniform. The number of weights must
// match the number of columns or rows.
package design
