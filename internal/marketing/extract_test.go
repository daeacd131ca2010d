package marketing

import "testing"

func TestFirstJSONObject_Plain(t *testing.T) {
	obj, ok := FirstJSONObject(`{"strategy": "go digital"}`)
	if !ok || obj != `{"strategy": "go digital"}` {
		t.Fatalf("unexpected extraction: %q ok=%v", obj, ok)
	}
}

func TestFirstJSONObject_WrappedInProse(t *testing.T) {
	text := `Sure! Here is the marketing plan you asked for:

{"strategy": "focus on niche", "channels": ["social"]}

Let me know if you need anything else.`
	obj, ok := FirstJSONObject(text)
	if !ok {
		t.Fatal("expected an object to be found")
	}
	if obj != `{"strategy": "focus on niche", "channels": ["social"]}` {
		t.Fatalf("unexpected object: %q", obj)
	}
}

func TestFirstJSONObject_CodeFence(t *testing.T) {
	text := "```json\n{\"strategy\": \"launch small\"}\n```"
	obj, ok := FirstJSONObject(text)
	if !ok || obj != `{"strategy": "launch small"}` {
		t.Fatalf("unexpected extraction: %q ok=%v", obj, ok)
	}
}

func TestFirstJSONObject_NestedAndBracesInStrings(t *testing.T) {
	text := `note: {"strategy": "use {growth} hacks", "nested": {"a": "b"}} trailing {`
	obj, ok := FirstJSONObject(text)
	if !ok {
		t.Fatal("expected an object to be found")
	}
	if obj != `{"strategy": "use {growth} hacks", "nested": {"a": "b"}}` {
		t.Fatalf("unexpected object: %q", obj)
	}
}

func TestFirstJSONObject_NoObject(t *testing.T) {
	if _, ok := FirstJSONObject("no json here, sorry"); ok {
		t.Fatal("expected no object")
	}
	if _, ok := FirstJSONObject(`["just", "an", "array"]`); ok {
		t.Fatal("top-level arrays are not plans")
	}
	if _, ok := FirstJSONObject("unbalanced {" + `"a": 1`); ok {
		t.Fatal("unbalanced braces must not match")
	}
}
