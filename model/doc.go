// Package model provides the data model shared by all selection-resolution
// operations.
//
// This package defines the user-facing types that describe a composite
// visualization and the selections made against it. Resolvers consume these
// types and produce them, making the package the primary API for anything
// built on top of the resolver.
//
// # Composites and Panels
//
// A [Composite] is an ordered collection of named panels plus a layout
// [Direction]. All panels implement the [Panel] interface; the concrete
// types are:
//
//   - [DataPanel] - a two-dimensional value grid with row/column labels and
//     clustering-derived split permutations
//   - [AnnotationPanel] - a one-dimensional strip with no grid
//
// The layout direction determines the linked axis: panels in a horizontal
// composite are concatenated left to right and share their rows, panels in
// a vertical composite are stacked and share their columns.
//
// # Permutations and Splits
//
// Each data panel carries one display permutation per split and axis:
// RowOrder[s] lists the original 1-based row indices assigned to row split
// s+1, top to bottom; ColumnOrder[t] is the analogue for columns, left to
// right. [DataPanel.Validate] checks the partition invariant: every original
// index appears in exactly one split.
//
// # Geometry
//
// [Point] and [BBox] are the geometric primitives. Coordinates use a
// bottom-left origin: Y grows upward, so the top display row of a panel
// sits at the top of its bounding box. Points carry a [Unit]; combining
// points with different units fails with [ErrUnitMismatch].
//
// # Selections
//
// A [SelectionRecord] is an ordered sequence of [SelectionRow] values, one
// per touched panel slice. Rows marshal to the stable JSON schema used by
// downstream consumers (fields heatmap, slice, row_slice, column_slice,
// row_index, column_index, row_label, column_label).
package model
