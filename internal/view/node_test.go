package view

import (
	"strings"
	"testing"
)

func TestClassHelpers(t *testing.T) {
	n := El("div", A("class", "card"))
	n.AddClass("active")
	n.AddClass("active")
	if got, _ := n.Get("class"); got != "card active" {
		t.Fatalf("class = %q, want %q", got, "card active")
	}
	n.ToggleClass("card", false)
	if n.HasClass("card") || !n.HasClass("active") {
		t.Fatalf("classes = %v", n.Classes())
	}
	n.RemoveClass("active")
	if _, ok := n.Get("class"); ok {
		t.Fatal("empty class attribute should be removed")
	}
}

func TestRemoveByIDAndPrepend(t *testing.T) {
	body := El("body", nil,
		El("nav", A("id", "sidebar")),
		El("main", nil, El("nav", A("id", "sidebar"))),
	)
	if n := body.RemoveByID("sidebar"); n != 2 {
		t.Fatalf("removed = %d, want 2", n)
	}
	if body.ByID("sidebar") != nil {
		t.Fatal("sidebar still present")
	}

	body.Prepend(El("header", A("id", "top")))
	if body.Children[0].ID() != "top" {
		t.Fatalf("first child = %q, want top", body.Children[0].ID())
	}
}

func TestRenderEscapesText(t *testing.T) {
	doc := Document(El("html", nil,
		El("body", A("class", "x"), El("p", nil, Text(`<script>"x"</script>`))),
	))
	out, err := RenderString(doc)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("text was not escaped: %s", out)
	}
	if !strings.Contains(out, `<body class="x">`) {
		t.Errorf("missing body attrs: %s", out)
	}
}

func TestTextContent(t *testing.T) {
	n := El("div", nil, Text("a"), El("span", nil, Text("b")), nil)
	if got := n.TextContent(); got != "ab" {
		t.Fatalf("TextContent = %q, want ab", got)
	}
	if len(n.Children) != 2 {
		t.Fatalf("nil children should be dropped, got %d", len(n.Children))
	}
}
