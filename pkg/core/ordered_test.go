package core

import "testing"

// obj builds an *OrderedObject from alternating key/value pairs, for
// constructing RawDocument-shaped test fixtures without going through
// the JSON decoder.
func obj(pairs ...any) *OrderedObject {
	o := newOrderedObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.set(pairs[i].(string), pairs[i+1])
	}
	return o
}

func TestDecodeOrderedDocumentPreservesKeyOrder(t *testing.T) {
	raw := []byte(`{"b":1,"a":2,"c":{"z":1,"y":2}}`)
	doc, err := decodeOrderedDocument(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Keys(); len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Fatalf("expected order [b a c], got %v", got)
	}

	cRaw, _ := doc.Get("c")
	c, ok := cRaw.(*OrderedObject)
	if !ok {
		t.Fatalf("expected nested object, got %#v", cRaw)
	}
	if got := c.Keys(); len(got) != 2 || got[0] != "z" || got[1] != "y" {
		t.Fatalf("expected nested order [z y], got %v", got)
	}
}

func TestDecodeOrderedDocumentRejectsNonObjectTopLevel(t *testing.T) {
	if _, err := decodeOrderedDocument([]byte(`[1,2,3]`)); err == nil {
		t.Fatalf("expected error for non-object top level")
	}
}

func TestDecodeOrderedDocumentRejectsTrailingData(t *testing.T) {
	if _, err := decodeOrderedDocument([]byte(`{"a":1}{"b":2}`)); err == nil {
		t.Fatalf("expected error for trailing data")
	}
}

func TestDecodeOrderedDocumentDecodesArraysAndScalars(t *testing.T) {
	raw := []byte(`{"nums":[1,2,3],"name":"x","flag":true,"nothing":null}`)
	doc, err := decodeOrderedDocument(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	numsRaw, _ := doc.Get("nums")
	nums, ok := numsRaw.([]any)
	if !ok || len(nums) != 3 {
		t.Fatalf("expected a 3-element array, got %#v", numsRaw)
	}
	if nums[0].(float64) != 1 {
		t.Errorf("expected first element 1, got %v", nums[0])
	}

	name, _ := doc.Get("name")
	if name != "x" {
		t.Errorf("expected name=x, got %v", name)
	}

	flag, _ := doc.Get("flag")
	if flag != true {
		t.Errorf("expected flag=true, got %v", flag)
	}

	nothing, ok := doc.Get("nothing")
	if !ok || nothing != nil {
		t.Errorf("expected nothing=nil, got %v (present=%v)", nothing, ok)
	}
}

func TestOrderedObjectSetKeepsFirstPositionOnRepeatedKey(t *testing.T) {
	o := obj("a", 1, "b", 2)
	o.set("a", 3)
	if got := o.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected order preserved as [a b], got %v", got)
	}
	v, _ := o.Get("a")
	if v != 3 {
		t.Errorf("expected last-write-wins value 3, got %v", v)
	}
}
