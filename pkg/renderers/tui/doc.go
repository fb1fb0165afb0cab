// Package tui collects form values in a terminal. Fields are prompted in
// declaration order through a PromptDriver (survey by default); fields whose
// toggle rule is off are skipped and cleared, required fields are asked again
// until answered, and Ctrl+C surfaces as ErrAborted.
package tui
