// Package tutorial replays the basic data manipulation walkthrough on the
// rdd engine: parallelizing a number list, converting temperatures and
// ranking student averages.
//
// A Runner executes named scenarios on an rdd.Context and returns a Report,
// which Render prints as text or JSON. Inputs and thresholds come from
// Dataset, whose defaults are the walkthrough's own data.
package tutorial
