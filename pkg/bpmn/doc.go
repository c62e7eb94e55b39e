// Package bpmn defines the logical BPMN graph consumed by the layout engine.
//
// A [Graph] is a list of [Node] values (id, shape tag, optional label and a
// cosmetic thick flag) plus a list of [Edge] values (source → target). It is
// the value produced by whatever upstream process generates diagrams; this
// package is the explicit boundary that turns untrusted JSON into a graph
// the layout engine can rely on.
//
// # Identifiers
//
// Node ids may be JSON integers or JSON strings. [ID] keeps both forms, so
// that output records echo ids exactly as they arrived. Integer 1 and
// string "1" are distinct ids.
//
// # Shape Categories
//
// Shape tags are free-form strings. [CategoryOf] maps them onto the small
// closed set of [Category] values that decide a node's nominal size:
//
//	event    start, end, event, startEvent, endEvent, intermediateEvent, ...
//	gateway  gateway, exclusiveGateway, parallelGateway, ...
//	task     task, activity, userTask, subProcess, ... (and any unknown tag)
//
// # Parsing and Validation
//
// [ReadJSON] and [ParseJSON] decode and validate in one step; [Graph.Validate]
// can be called on graphs built in code. Validation failures are
// GraphValidationErrors (code INVALID_GRAPH) naming the offending id.
package bpmn
