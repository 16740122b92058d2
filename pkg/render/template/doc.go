// Package template defines the template renderer seam used by widget
// controls, the embedded widget templates, and the callback that feeds a
// control's view data into a renderer.
package template
