// Package faascompose builds, compiles, and resumes serverless function
// compositions.
//
// The composition builder is in package compose, the compiler that lowers
// a composition into a flat resumable state machine is in package fsm, and
// the interpreter that steps that state machine one action invocation at a
// time is in package conductor. Command-line tools live under cmd.
//
// See SPEC_FULL.md for the full specification this module implements.
package faascompose
