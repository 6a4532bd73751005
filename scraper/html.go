package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// findElement walks the tree depth-first and returns the first element
// node the match function accepts.
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findByClass finds the first <tag> whose class attribute contains the
// given class token.
func findByClass(n *html.Node, tag, class string) *html.Node {
	return findElement(n, func(el *html.Node) bool {
		if el.Data != tag {
			return false
		}
		for _, token := range strings.Fields(attrValue(el, "class")) {
			if token == class {
				return true
			}
		}
		return false
	})
}

// findByAttr finds the first <tag> carrying the given attribute value.
func findByAttr(n *html.Node, tag, key, value string) *html.Node {
	return findElement(n, func(el *html.Node) bool {
		return el.Data == tag && attrValue(el, key) == value
	})
}

// findLink finds the first anchor whose href the match function accepts
// and returns that href.
func findLink(n *html.Node, match func(href string) bool) string {
	link := findElement(n, func(el *html.Node) bool {
		return el.Data == "a" && match(attrValue(el, "href"))
	})
	if link == nil {
		return ""
	}
	return attrValue(link, "href")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var text strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			text.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(text.String())
}
