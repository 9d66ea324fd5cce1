// Package fnstat implements the fnstat command: summary statistics over a
// stream of numbers, computed with fnkit pipelines.
//
// Input is one number per line. Blank lines and lines starting with '#' are
// skipped. The kept values pass through
//
//	parse -> filter(predicate, min, max) -> scale*x + offset
//
// and are reported as count, sum, mean and the right-folded alternating sum
// x1 - (x2 - (x3 - ...)).
package fnstat
