// Package element implements the typed form controls that make up a form
// tree. Every control satisfies Element and reports one Kind from a closed
// set, so factories and renderers can switch exhaustively instead of probing
// concrete types.
//
// Composite controls (Select, SelectMultiple, CheckboxSet, RadioSet) own a
// sub-tree of option nodes built from a Choice list and keep each option's
// selected or checked state in lock-step with their logical value. Optional
// behaviours such as upload constraints, per-option attributes, and
// template-backed rendering are exposed as small capability interfaces
// queried with type assertions.
package element
