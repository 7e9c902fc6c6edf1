// Package assessfine implements the manual Assess Fine use case.
//
// Staff attaches a fine with an explicit amount to a loan. The automatic, rate based assessment
// lives in package assessoverduefine. Either way a loan carries at most one fine.
package assessfine
