package script

import (
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/chains/internal/render"
	"github.com/mesh-intelligence/chains/pkg/chain"
	"github.com/mesh-intelligence/chains/pkg/payload"
	"github.com/mesh-intelligence/chains/pkg/types"
)

// Result is the outcome of one op.
type Result struct {
	Step        int    `json:"step"`
	Op          string `json:"op"`
	Mode        string `json:"mode,omitempty"`
	OK          bool   `json:"ok"`
	Value       string `json:"value,omitempty"`
	Index       *int   `json:"index,omitempty"`
	Len         int    `json:"len"`
	SlotCleared bool   `json:"slot_cleared,omitempty"`
	Refused     bool   `json:"refused,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Report is the outcome of a whole script.
type Report struct {
	Name     string        `json:"name,omitempty"`
	Topology string        `json:"topology"`
	ListID   string        `json:"list_id"`
	Results  []Result      `json:"results"`
	Forward  []string      `json:"forward"`
	Backward []string      `json:"backward,omitempty"`
	Chain    string        `json:"chain"`
	Stats    payload.Stats `json:"stats"`
}

// Refused counts the ops whose allocation was refused.
func (r *Report) Refused() int {
	n := 0
	for _, res := range r.Results {
		if res.Refused {
			n++
		}
	}
	return n
}

// Settings merges the script header over base. Fields the script leaves
// zero keep the base value.
func (s *Script) Settings(base types.Config) types.Config {
	cfg := base
	if s.Topology != "" {
		cfg.Topology = s.Topology
	}
	if s.MaxNodes > 0 {
		cfg.MaxNodes = s.MaxNodes
	}
	if s.MaxBytes > 0 {
		cfg.MaxBytes = s.MaxBytes
	}
	return cfg
}

type runner struct {
	list   chain.List
	format render.Format
	held   []*chain.Node
}

// Run builds a list for cfg and replays every op of s against it. Misses
// and refused allocations are recorded in the report and do not stop the
// run. The list and any detached nodes are freed before Run returns.
func Run(s *Script, cfg types.Config, log logrus.FieldLogger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := render.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}
	budget := payload.NewBudget(cfg.MaxBytes)
	l, err := chain.New(cfg, chain.WithAllocator(budget), chain.WithLogger(log))
	if err != nil {
		return nil, err
	}
	r := &runner{list: l, format: format}

	rep := &Report{
		Name:     s.Name,
		Topology: l.Topology(),
		ListID:   l.ID().String(),
		Results:  make([]Result, 0, len(s.Ops)),
	}
	for i := range s.Ops {
		res := r.step(&s.Ops[i])
		res.Step = i + 1
		res.Len = l.Len()
		rep.Results = append(rep.Results, res)
	}

	rep.Forward = render.Strings(l, format)
	if d, ok := l.(*chain.Doubly); ok {
		rep.Backward = render.BackwardStrings(d, format)
	}
	rep.Chain = render.Chain(l, format)
	rep.Stats = budget.Stats()

	l.FreeAll()
	for _, n := range r.held {
		releaseChain(n)
	}
	return rep, nil
}

func (r *runner) step(o *Op) Result {
	res := Result{Op: o.Op}
	mode := o.mode()
	value, _ := o.bytes()

	var err error
	switch o.Op {
	case OpPushFront, OpPushBack, OpInsertAt:
		res.Mode = mode.String()
		buf := value
		src := payload.From(mode, &buf)
		switch o.Op {
		case OpPushFront:
			err = r.list.PushFront(src)
		case OpPushBack:
			err = r.list.PushBack(src)
		default:
			err = r.list.InsertAt(*o.Index, src)
		}
		res.SlotCleared = mode == payload.ModeMove && err == nil && buf == nil
	case OpPushFrontNodes, OpPushBackNodes, OpInsertNodesAt:
		res.Mode = mode.String()
		err = r.nodes(o, mode, &res)
	case OpGet:
		var v payload.View
		if v, err = r.list.Get(*o.Index); err == nil {
			res.Value = render.Payload(v, r.format)
		}
	case OpFind:
		var c chain.Cursor
		if c, err = r.list.Find(value); err == nil {
			res.Value = render.Payload(c.Value(), r.format)
			idx := r.list.IndexOf(value)
			res.Index = &idx
		}
	case OpContains:
		res.Value = strconv.FormatBool(r.list.Contains(value))
	case OpDeleteAt:
		err = r.list.DeleteAt(*o.Index)
	case OpDeleteValue:
		err = r.list.DeleteByValue(value)
	case OpFreeAll:
		r.list.FreeAll()
	case OpLen:
		res.Value = strconv.Itoa(r.list.Len())
	}

	res.OK = err == nil
	if err != nil {
		res.Error = err.Error()
		res.Refused = errors.Is(err, types.ErrAllocation)
	}
	return res
}

// nodes builds a detached chain holding copies of o.Values and links it in
// mode. A chain linked by reference is kept until the run ends; a copied
// chain is released at once.
func (r *runner) nodes(o *Op, mode payload.Mode, res *Result) error {
	var head *chain.Node
	for i := len(o.Values) - 1; i >= 0; i-- {
		n, err := r.list.CreateNode(payload.Copy([]byte(o.Values[i])), head)
		if err != nil {
			releaseChain(head)
			return err
		}
		head = n
	}

	var ns chain.NodeSource
	switch mode {
	case payload.ModeMove:
		ns = chain.MoveNode(&head)
	case payload.ModeRef:
		ns = chain.RefNode(head)
	default:
		ns = chain.CopyNode(head)
	}

	var err error
	switch o.Op {
	case OpPushFrontNodes:
		err = r.list.PushFrontNode(ns)
	case OpPushBackNodes:
		err = r.list.PushBackNode(ns)
	default:
		err = r.list.InsertNodeAt(*o.Index, ns)
	}

	switch {
	case mode == payload.ModeMove && err == nil:
		res.SlotCleared = head == nil
	case mode == payload.ModeRef && err == nil:
		r.held = append(r.held, head)
	default:
		releaseChain(head)
	}
	return err
}

func releaseChain(n *chain.Node) {
	for ; n != nil; n = n.Next() {
		n.Release()
	}
}
