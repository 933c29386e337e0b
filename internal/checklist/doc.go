// Package checklist holds the daily trading checklist and the operations
// that mutate it.
//
// A Document is an ordered list of Items plus the set of item IDs checked
// for a single day:
//
//	{
//	  "schema_version": 2,
//	  "checked_on": "2026-10-16",
//	  "items": [
//	    {"id": "5f0b…", "position": 1, "text": "Is my position size correct?"}
//	  ],
//	  "checked": ["5f0b…"]
//	}
//
// # Positions
//
// Positions are 1-based, unique and dense. Every structural mutation
// (Add, Delete, Reorder, Move) renumbers the list so that a document with
// N items always carries positions 1..N in slice order.
//
// # Identity
//
// Items are identified by an ID assigned once at creation. Text is only a
// label: two items may share the same text and still be checked, moved and
// deleted independently through the ID-keyed operations. Delete and
// FindByText match every item with the given text. Reorder claims one item
// per text, taking the first unused one.
//
// # Checked state
//
// The checked set is a snapshot for one calendar day (CheckedOn). StartDay
// clears it when a new day begins; it is not a history.
package checklist
