// Package wire encodes and decodes representation trees.
//
// # Text Format
//
// The textual format is a nested-object (JSON) document:
//
//	{"oc": [ <node>, <node>, ... ]}
//
// The first node is the root representation; the rest are its children in
// order. A node holds the attributes plus optional metadata:
//
//	{ "<key>": <value>, ..., "href": "<uri>",
//	  "prop": { "rt": ["<type>", ...], "if": ["<interface>", ...] },
//	  "oc": [ <node>, ... ] }
//
// "href" is present only when the URI is set, "rt" only when resource types
// exist, "if" only when the interface mask is set, and "oc" only on a child
// that has children of its own. These member names are reserved.
//
// Attribute values map as follows:
//
//	Int     integer number            60
//	Double  number with a fraction    60.0, 1e+21
//	Bool    true / false
//	Str     string
//	Null    null
//	List    array                     [1, 2, 3]
//	Object  wrapped node              {"rep": {...}}
//	Bytes   wrapped base64 string     {"bstr": "yv4="}
//
// # Binary Format
//
// The binary format is the CBOR encoding of the flattened native payload
// (see package payload), with integer keys and deterministic output.
package wire
