package document

import "github.com/google/uuid"

// Layer owns an ordered run of elements. Insertion order is z-order; index 0
// renders at the bottom.
type Layer struct {
	ID       string
	Name     string
	Visible  bool
	Locked   bool
	Elements []Element
}

func NewLayer(name string) *Layer {
	return &Layer{ID: uuid.NewString(), Name: name, Visible: true}
}

func (l *Layer) Add(el Element) {
	l.Elements = append(l.Elements, el)
}

// Remove removes the element with the given id and reports whether it was
// present.
func (l *Layer) Remove(id string) bool {
	for i, el := range l.Elements {
		if el.Base().ID == id {
			l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
			return true
		}
	}
	return false
}

// Replace removes the element with the given id and inserts the replacements
// at its z position. Used by operations that consume inputs and add results.
func (l *Layer) Replace(id string, replacements ...Element) bool {
	for i, el := range l.Elements {
		if el.Base().ID == id {
			tail := append([]Element{}, l.Elements[i+1:]...)
			l.Elements = append(l.Elements[:i], replacements...)
			l.Elements = append(l.Elements, tail...)
			return true
		}
	}
	return false
}

// Document is an ordered container of layers plus the page size, in unitless
// document coordinates.
type Document struct {
	Width  float64
	Height float64
	Layers []*Layer
}

func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

func (d *Document) AddLayer(name string) *Layer {
	l := NewLayer(name)
	d.Layers = append(d.Layers, l)
	return l
}

// FindElement looks up an element by id across all layers, descending into
// groups. It is the single element-lookup capability handed to tools; element
// ids are unique within a document.
func (d *Document) FindElement(id string) Element {
	for _, layer := range d.Layers {
		if el := findIn(layer.Elements, id); el != nil {
			return el
		}
	}
	return nil
}

func findIn(elements []Element, id string) Element {
	for _, el := range elements {
		if el.Base().ID == id {
			return el
		}
		if group, ok := el.(*GroupElement); ok {
			if found := findIn(group.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// RemoveElement removes an element by id from whichever layer holds it.
func (d *Document) RemoveElement(id string) bool {
	for _, layer := range d.Layers {
		if layer.Remove(id) {
			return true
		}
	}
	return false
}
