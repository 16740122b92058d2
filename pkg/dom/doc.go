// Package dom provides the generic tag/attribute/children tree every form
// control is built on. Nodes carry no validation or business logic; elements
// in pkg/element wrap a Node and translate their logical value onto its
// attributes, text, or child nodes.
package dom
