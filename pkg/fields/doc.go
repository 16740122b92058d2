// Package fields turns declarative field records into typed controls.
//
// A record names its control with `type`; built-in types are dispatched
// directly and anything else is looked up in the factory's registry of named
// constructors. After construction the factory applies the cross-cutting
// keys (labels, hints, flags, attributes, validators) and the invariants of
// specific controls, such as the size and media type checks every file
// field carries.
package fields
