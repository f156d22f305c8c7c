// Package schedule turns a pump scheduling scenario into a binary
// quadratic model and decodes solver samples back into an operating
// schedule, its cost and the implied reservoir level trace.
package schedule
