package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidPosition indicates that a position does not address a node.
var ErrInvalidPosition = errors.New("invalid document position")

var leafTypes = map[string]bool{
	"hardBreak":      true,
	"horizontalRule": true,
	"image":          true,
}

// IsLeafType reports whether nodes of the given type never hold content.
func IsLeafType(nodeType string) bool {
	return nodeType == "text" || leafTypes[nodeType]
}

// IsText reports whether the node is a text node.
func (n Node) IsText() bool {
	return n.Type == "text"
}

// IsLeaf reports whether the node has no addressable content.
func (n Node) IsLeaf() bool {
	return IsLeafType(n.Type)
}

// NodeSize is the number of positions the node occupies in its parent:
// rune count for text, 1 for other leaves, content size plus the two
// boundary tokens for everything else.
func (n Node) NodeSize() int {
	if n.IsText() {
		return utf8.RuneCountInString(n.Text)
	}
	if n.IsLeaf() {
		return 1
	}
	return n.ContentSize() + 2
}

// ContentSize is the summed size of the node's children.
func (n Node) ContentSize() int {
	size := 0
	for _, child := range n.Content {
		size += child.NodeSize()
	}
	return size
}

// ContentSize is the size of the document's content, i.e. the largest valid position.
func (d Doc) ContentSize() int {
	return d.Root().ContentSize()
}

// NodeVisitor is called for every node visited by NodesBetween. Returning
// false skips the node's children.
type NodeVisitor func(node Node, pos int, parent *Node, index int) bool

// NodesBetween calls visit, in document order, for every node that overlaps
// [from, to). Nodes that only partly overlap are included, and a collapsed
// range still visits the nodes that contain it.
func (d Doc) NodesBetween(from, to int, visit NodeVisitor) {
	root := d.Root()
	nodesBetween(&root, from, to, 0, visit)
}

func nodesBetween(parent *Node, from, to, nodeStart int, visit NodeVisitor) {
	pos := 0
	for i := 0; i < len(parent.Content) && pos < to; i++ {
		child := parent.Content[i]
		end := pos + child.NodeSize()
		if end > from && visit(child, nodeStart+pos, parent, i) && !child.IsLeaf() && len(child.Content) > 0 {
			start := pos + 1
			nodesBetween(&child, max(0, from-start), min(child.ContentSize(), to-start), nodeStart+start, visit)
		}
		pos = end
	}
}

// NodeAt returns the node starting at pos, or the text node containing it.
func (d Doc) NodeAt(pos int) (Node, bool) {
	if pos < 0 {
		return Node{}, false
	}
	return nodeAt(d.Root(), pos)
}

func nodeAt(parent Node, pos int) (Node, bool) {
	offset := 0
	for _, child := range parent.Content {
		size := child.NodeSize()
		if pos < offset+size {
			if pos == offset || child.IsText() {
				return child, true
			}
			return nodeAt(child, pos-offset-1)
		}
		offset += size
	}
	return Node{}, false
}

// UpdateNodeAt returns a copy of the document where the non-text node
// starting at pos is replaced by update(node). Only the path from the root to
// that node is copied; the receiver is left untouched.
func (d Doc) UpdateNodeAt(pos int, update func(Node) Node) (Doc, error) {
	root, err := updateNodeAt(d.Root(), pos, update)
	if err != nil {
		return Doc{}, fmt.Errorf("%w: %d", err, pos)
	}
	d.Content = root.Content
	return d, nil
}

func updateNodeAt(parent Node, pos int, update func(Node) Node) (Node, error) {
	offset := 0
	for i, child := range parent.Content {
		size := child.NodeSize()
		if pos >= offset+size {
			offset += size
			continue
		}

		var updated Node
		switch {
		case pos == offset && !child.IsText():
			updated = update(child)
		case child.IsLeaf():
			return Node{}, ErrInvalidPosition
		default:
			var err error
			updated, err = updateNodeAt(child, pos-offset-1, update)
			if err != nil {
				return Node{}, err
			}
		}

		content := make([]Node, len(parent.Content))
		copy(content, parent.Content)
		content[i] = updated
		parent.Content = content
		return parent, nil
	}
	return Node{}, ErrInvalidPosition
}

// MapTextMarks returns a copy of the document where the marks of every text
// slice inside [from, to) are replaced by update(marks). Text nodes crossing the
// range boundary are split; adjacent text nodes with equal marks are joined.
func (d Doc) MapTextMarks(from, to int, update func([]Mark) []Mark) Doc {
	if from >= to {
		return d
	}
	root := mapTextMarks(d.Root(), from, to, update)
	d.Content = root.Content
	return d
}

func mapTextMarks(parent Node, from, to int, update func([]Mark) []Mark) Node {
	content := make([]Node, 0, len(parent.Content))
	pos := 0
	for _, child := range parent.Content {
		end := pos + child.NodeSize()
		if end <= from || pos >= to {
			content = append(content, child)
			pos = end
			continue
		}

		switch {
		case child.IsText():
			runes := []rune(child.Text)
			start := max(from-pos, 0)
			stop := min(to-pos, len(runes))
			if start > 0 {
				content = append(content, textSlice(child, runes[:start], child.Marks))
			}
			if stop > start {
				content = append(content, textSlice(child, runes[start:stop], update(child.Marks)))
			}
			if stop < len(runes) {
				content = append(content, textSlice(child, runes[stop:], child.Marks))
			}
		case child.IsLeaf():
			content = append(content, child)
		default:
			content = append(content, mapTextMarks(child, from-pos-1, to-pos-1, update))
		}
		pos = end
	}

	parent.Content = JoinText(content)
	return parent
}

func textSlice(node Node, runes []rune, marks []Mark) Node {
	node.Text = string(runes)
	node.Marks = marks
	return node
}

// JoinText merges adjacent text nodes that carry equal marks.
func JoinText(content []Node) []Node {
	if len(content) == 0 {
		return nil
	}
	joined := make([]Node, 0, len(content))
	for _, node := range content {
		last := len(joined) - 1
		if node.IsText() && last >= 0 && joined[last].IsText() && SameMarkSet(joined[last].Marks, node.Marks) {
			joined[last].Text += node.Text
			continue
		}
		joined = append(joined, node)
	}
	return joined
}

// MarksAt returns the marks active at pos: those of the inline node before
// it, or of the node after it when pos is at the start of a textblock.
func (d Doc) MarksAt(pos int) []Mark {
	return marksAt(d.Root(), pos)
}

func marksAt(parent Node, pos int) []Mark {
	offset := 0
	var after []Mark
	foundAfter := false
	for _, child := range parent.Content {
		end := offset + child.NodeSize()
		if !child.IsLeaf() && pos > offset && pos < end {
			return marksAt(child, pos-offset-1)
		}
		if child.IsText() && pos > offset && pos <= end {
			return child.Marks
		}
		if offset == pos && !foundAfter {
			after = child.Marks
			foundAfter = true
		}
		offset = end
	}
	return after
}
