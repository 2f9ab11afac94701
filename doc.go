package jsonvisit

// Package jsonvisit provides:
//
// - Typed traversal over JSON-like value graphs via Node/Visitor dispatch (Accept)
// - Immutable JSON Pointer locations threaded through the traversal (Path)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Document decoding from JSON/YAML sources with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place input drivers under source/, and the CLI under cmd/jsonvisit.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	node, err := jsonvisit.DecodeDocument(jsonvisit.JSONBytes(data))
//	v, err := jsonvisit.Accept[string](node, visitor)
//
//	ptrs, err := jsonvisit.CollectPointers(node)
