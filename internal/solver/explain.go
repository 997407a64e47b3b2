package solver

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"copyck/internal/clauses"
	"copyck/internal/ty"
)

// DerivationSource says how a goal in the tree was settled.
type DerivationSource string

const (
	SourceFact     DerivationSource = "fact"     // unconditional clause
	SourceRule     DerivationSource = "rule"     // conditional clause, all premises proven
	SourceUnproven DerivationSource = "unproven" // no clause applies, or a premise failed
)

// DerivationNode is one goal in a derivation tree.
type DerivationNode struct {
	Goal     ty.TraitRef
	Source   DerivationSource
	Rule     string // the clause used, for SourceRule
	Children []*DerivationNode
	Depth    int
}

// DerivationTrace is the derivation tree of a Result.
type DerivationTrace struct {
	Goal     string
	Holds    bool
	Root     *DerivationNode
	Nodes    int
	Duration time.Duration
}

// Explain rebuilds how the verdict was reached. Proven goals show the clause
// that derived them; unproven goals show the first clause whose premises
// failed, down to the goals with no clause at all.
func (r *Result) Explain() *DerivationTrace {
	byGoal := make(map[string][]clauses.Clause)
	for _, c := range r.Clauses {
		key := c.Consequence.Key()
		byGoal[key] = append(byGoal[key], c)
	}

	trace := &DerivationTrace{
		Goal:     r.Goal.String(),
		Holds:    r.Holds,
		Duration: r.Duration,
	}
	b := &treeBuilder{byGoal: byGoal, derived: r.Derived, onPath: make(map[string]bool)}
	trace.Root = b.build(r.Goal, 0)
	trace.Nodes = b.count
	return trace
}

type treeBuilder struct {
	byGoal  map[string][]clauses.Clause
	derived map[string]bool
	onPath  map[string]bool
	count   int
}

func (b *treeBuilder) holds(ref ty.TraitRef) bool {
	return b.derived[ref.Self.String()]
}

func (b *treeBuilder) build(ref ty.TraitRef, depth int) *DerivationNode {
	b.count++
	node := &DerivationNode{Goal: ref, Source: SourceUnproven, Depth: depth}

	key := ref.Key()
	if b.onPath[key] {
		return node
	}
	b.onPath[key] = true
	defer delete(b.onPath, key)

	candidates := b.byGoal[key]
	if len(candidates) == 0 {
		return node
	}

	chosen := candidates[0]
	if b.holds(ref) {
		for _, c := range candidates {
			if b.premisesHold(c) {
				chosen = c
				break
			}
		}
	}

	if chosen.IsFact() {
		node.Source = SourceFact
		return node
	}
	if b.holds(ref) {
		node.Source = SourceRule
	}
	node.Rule = chosen.String()
	for _, cond := range chosen.Conditions {
		node.Children = append(node.Children, b.build(cond, depth+1))
	}
	return node
}

func (b *treeBuilder) premisesHold(c clauses.Clause) bool {
	for _, cond := range c.Conditions {
		if !b.holds(cond) {
			return false
		}
	}
	return true
}

// RenderASCII renders the tree as indented ASCII art.
func (trace *DerivationTrace) RenderASCII() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Goal: %s\n", trace.Goal))
	sb.WriteString(fmt.Sprintf("Holds: %t\n", trace.Holds))
	sb.WriteString(fmt.Sprintf("Duration: %v\n", trace.Duration))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	if trace.Root != nil {
		renderNodeASCII(&sb, trace.Root, "", true)
	}
	return sb.String()
}

func renderNodeASCII(sb *strings.Builder, node *DerivationNode, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	sb.WriteString(fmt.Sprintf("%s%s%s [%s]\n", prefix, connector, node.Goal.String(), node.Source))

	childPrefix := prefix
	if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}
	for i, child := range node.Children {
		renderNodeASCII(sb, child, childPrefix, i == len(node.Children)-1)
	}
}

// RenderJSON renders the tree as JSON.
func (trace *DerivationTrace) RenderJSON() ([]byte, error) {
	type jsonNode struct {
		Goal     string      `json:"goal"`
		Source   string      `json:"source"`
		Rule     string      `json:"rule,omitempty"`
		Depth    int         `json:"depth"`
		Children []*jsonNode `json:"children,omitempty"`
	}

	var convertNode func(*DerivationNode) *jsonNode
	convertNode = func(n *DerivationNode) *jsonNode {
		jn := &jsonNode{
			Goal:   n.Goal.String(),
			Source: string(n.Source),
			Rule:   n.Rule,
			Depth:  n.Depth,
		}
		for _, child := range n.Children {
			jn.Children = append(jn.Children, convertNode(child))
		}
		return jn
	}

	out := struct {
		Goal     string    `json:"goal"`
		Holds    bool      `json:"holds"`
		Nodes    int       `json:"nodes"`
		Duration string    `json:"duration"`
		Root     *jsonNode `json:"root,omitempty"`
	}{
		Goal:     trace.Goal,
		Holds:    trace.Holds,
		Nodes:    trace.Nodes,
		Duration: trace.Duration.String(),
	}
	if trace.Root != nil {
		out.Root = convertNode(trace.Root)
	}
	return json.MarshalIndent(out, "", "  ")
}
