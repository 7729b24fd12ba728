package printer

import (
	"encoding/json"

	"github.com/joshuapare/gcvm/heap"
)

// jsonObject represents one heap object in JSON format.
type jsonObject struct {
	Ref       string      `json:"ref"`
	Kind      string      `json:"kind"`
	Value     *int        `json:"value,omitempty"`
	Head      *jsonObject `json:"head,omitempty"`
	Tail      *jsonObject `json:"tail,omitempty"`
	Cycle     bool        `json:"cycle,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
}

// printJSON prints the subgraph of ref as an indented JSON document.
func (p *Printer) printJSON(ref heap.Ref) error {
	root, err := p.jsonNode(ref, 0)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", p.opts.Indent)
	return enc.Encode(root)
}

func (p *Printer) jsonNode(ref heap.Ref, depth int) (*jsonObject, error) {
	obj, err := p.h.Get(ref)
	if err != nil {
		return nil, err
	}
	node := &jsonObject{Ref: ref.String(), Kind: obj.Kind().String()}
	switch v := obj.Payload.(type) {
	case heap.Scalar:
		value := v.Value
		node.Value = &value
	case heap.Pair:
		if p.onPath.IsSet(ref.Index()) {
			node.Cycle = true
			return node, nil
		}
		if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
			node.Truncated = true
			return node, nil
		}
		p.onPath.Set(ref.Index())
		if node.Head, err = p.jsonNode(v.Head, depth+1); err != nil {
			return nil, err
		}
		if node.Tail, err = p.jsonNode(v.Tail, depth+1); err != nil {
			return nil, err
		}
		p.onPath.Clear(ref.Index())
	}
	return node, nil
}
