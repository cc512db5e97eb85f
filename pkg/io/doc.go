// Package io provides JSON import and export of approximation results.
//
// # JSON Format
//
// A report carries the outcome of one run together with the best
// decomposition in DOT form:
//
//	{
//	  "run": "5b1d0c9e-...",
//	  "function": "rank-width",
//	  "vertices": 25,
//	  "width": 5,
//	  "score": 410,
//	  "iterations": 12800,
//	  "elapsed_ms": 842,
//	  "progress": [{"elapsed_ms": 0, "width": 8}, {"elapsed_ms": 120, "width": 5}],
//	  "stats": {"rescores": 31, "skipped": 220, "hits": 900, "misses": 310},
//	  "decomposition": "graph decomposition {\n ... }\n"
//	}
//
// Trivial graphs are reported with "trivial": true, a "reason" and no
// decomposition.
//
// # Import
//
// Use [ImportJSON] to read a report from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	r, err := io.ImportJSON("best.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.Width)
//
// # Export
//
// Use [ExportJSON] to write a report to a file, or [WriteJSON] to write to
// any io.Writer. [NewReport] builds a report from a pipeline result.
package io
