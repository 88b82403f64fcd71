// Package lodestone compiles declarative JSON definitions into trees of
// extraction rules and evaluates them against parsed HTML documents.
//
// A definition maps names to either elements (a CSS selector with an optional
// attribute and regex refinement) or nested containers. The compiled tree is
// bound to one document at a time; binding a new document takes effect for
// every element at once.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package lodestone
