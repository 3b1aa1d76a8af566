// Package render builds the explorer page as templ components.
//
// Rendering is a pure function of [PageData]: the lifecycle phase selects
// one of the loading indicator, the error message, or the results view, and
// the results view shows the filter controls plus either one card per
// creature or the empty-state placeholder. Components never fetch or mutate
// anything; user input flows back as a plain GET form submission.
package render
