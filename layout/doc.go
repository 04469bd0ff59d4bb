// Package layout parses composite visualization definitions from YAML.
//
// The format describes panels, their labels, clustering-derived split
// assignments, and optional value grids:
//
//	name: demo
//	direction: horizontal
//	panels:
//	  - name: expr
//	    row_labels: [g1, g2, g3]
//	    column_labels: [s1, s2]
//	    row_splits: [[3, 1], [2]]
//	    values:
//	      - [0.5, 1.2]
//	      - [~, 2.0]
//	      - [0.1, 0.4]
//	  - name: mutations
//	    kind: annotation
//
// Omitted split assignments default to a single split in natural order.
// Null value cells become missing (NaN). The parsed composite is validated
// before being returned.
package layout
