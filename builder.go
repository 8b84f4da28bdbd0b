package dafsa

import (
	"fmt"
	"slices"
	"strings"
)

// Option configures construction.
type Option func(*options)

type options struct {
	minimize  bool
	weights   bool
	join      bool
	delimiter string
}

func defaultOptions() options {
	return options{minimize: true, weights: true}
}

// Minimize controls whether structurally equivalent subtrees are folded
// together during insertion. Disabling it yields a plain trie, trading
// automaton size for skipping the fold pass.
func Minimize(on bool) Option {
	return func(o *options) { o.minimize = on }
}

// CollectWeights controls whether a second pass over the added sequences
// annotates every node and edge with its traversal count.
func CollectWeights(on bool) Option {
	return func(o *options) { o.weights = on }
}

// JoinTransitions enables joining chains of single transitions into
// compound labels after minimization, using the given delimiter. The
// joined graph is kept separately for display; queries and compaction
// always operate on the plain-element graph.
func JoinTransitions(delimiter string) Option {
	return func(o *options) {
		o.join = true
		o.delimiter = delimiter
	}
}

type uncheckedNode struct {
	parent *Node
	label  string
	child  *Node
}

// DAFSA is a deterministic acyclic finite-state automaton over sequences
// of string elements. Sequences must be added in non-decreasing
// lexicographic order; Finish completes minimization and, if requested,
// weight collection and transition joining.
type DAFSA struct {
	opts options

	root   *Node
	nextID int

	// frontier holds the (parent, label, child) triples created since the
	// last fold that are still subject to structural change. Its length
	// always equals the length of the most recently added sequence.
	frontier []uncheckedNode
	registry map[string]*Node

	lastSeq []string
	seqs    [][]string // retained for the weight pass only
	numSeqs int

	finished bool

	// joined is the compound-transition rendering of the graph, built by
	// Finish when JoinTransitions was requested. Nil otherwise.
	joined *Node
}

// New creates an empty automaton. By default minimization and weight
// collection are enabled.
func New(opts ...Option) *DAFSA {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &DAFSA{
		opts:     o,
		root:     newNode(0),
		nextID:   1,
		registry: make(map[string]*Node),
	}
}

// FromSequences builds a finished automaton from the given sequences.
// The input is sorted before insertion, so any order is accepted;
// duplicates are kept and contribute to weights.
func FromSequences(seqs [][]string, opts ...Option) (*DAFSA, error) {
	sorted := make([][]string, len(seqs))
	copy(sorted, seqs)
	slices.SortFunc(sorted, slices.Compare)

	d := New(opts...)
	for _, seq := range sorted {
		if err := d.Add(seq); err != nil {
			return nil, err
		}
	}
	d.Finish()
	return d, nil
}

// FromWords builds a finished automaton from words, one element per rune.
func FromWords(words []string, opts ...Option) (*DAFSA, error) {
	seqs := make([][]string, len(words))
	for i, w := range words {
		seqs[i] = Tokenize(w)
	}
	return FromSequences(seqs, opts...)
}

// Tokenize splits a word into single-character elements.
func Tokenize(word string) []string {
	seq := make([]string, 0, len(word))
	for _, r := range word {
		seq = append(seq, string(r))
	}
	return seq
}

// Add inserts one sequence. Sequences must arrive in non-decreasing
// lexicographic order; an out-of-order sequence returns ErrOutOfOrder
// rather than silently mis-minimizing. Adding the same sequence twice is
// allowed and only affects weights.
func (d *DAFSA) Add(seq []string) error {
	if d.finished {
		return ErrFinished
	}
	if d.numSeqs > 0 && slices.Compare(seq, d.lastSeq) < 0 {
		return fmt.Errorf("%w: %q after %q",
			ErrOutOfOrder, strings.Join(seq, ""), strings.Join(d.lastSeq, ""))
	}

	prefix := commonPrefixLen(seq, d.lastSeq)

	// Nodes on the frontier deeper than the shared prefix can never be
	// extended by a later sequence, so they are safe to fold now.
	d.fold(prefix)

	node := d.root
	if len(d.frontier) > 0 {
		node = d.frontier[len(d.frontier)-1].child
	}

	for _, element := range seq[prefix:] {
		child := newNode(d.nextID)
		d.nextID++
		node.edges[element] = &Edge{node: child}
		d.frontier = append(d.frontier, uncheckedNode{node, element, child})
		node = child
	}

	node.final = true
	d.lastSeq = seq
	d.numSeqs++
	if d.opts.weights {
		d.seqs = append(d.seqs, seq)
	}
	return nil
}

// AddWord inserts a word with one element per rune.
func (d *DAFSA) AddWord(word string) error {
	return d.Add(Tokenize(word))
}

// Finish flushes the frontier with a full fold and runs the weight and
// transition-joining passes if they were requested. It is idempotent.
// The automaton cannot be added to afterwards.
func (d *DAFSA) Finish() {
	if d.finished {
		return
	}
	d.finished = true

	d.fold(0)
	d.registry = nil
	d.lastSeq = nil

	if d.opts.weights {
		d.collectWeights()
		d.seqs = nil
	}
	if d.opts.join {
		d.joined = d.root.clone(make(map[*Node]*Node))
		joinTransitions(d.joined, d.opts.delimiter)
	}
}

// fold pops frontier entries most-recent-first down to downTo, merging
// every child whose signature is already registered. Because retargeting
// one edge can change an ancestor's signature, the pass repeats over the
// range until it makes no changes.
func (d *DAFSA) fold(downTo int) {
	if d.opts.minimize {
		for {
			changed := false
			for i := len(d.frontier) - 1; i >= downTo; i-- {
				u := d.frontier[i]
				sig := u.child.signature()
				rep, ok := d.registry[sig]
				if !ok {
					d.registry[sig] = u.child
					continue
				}
				if rep == u.child {
					continue
				}
				// Replace the child with the previously registered
				// equivalent node. The signature covers the final flag,
				// so no state is lost in the merge.
				u.parent.edges[u.label].node = rep
				d.frontier[i].child = rep
				changed = true
			}
			if !changed {
				break
			}
		}
	}
	d.frontier = d.frontier[:downTo]
}

func commonPrefixLen(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Root returns the root of the query graph. Finish must have been called.
func (d *DAFSA) Root() *Node {
	d.checkFinished()
	return d.root
}

// Nodes returns every node of the display graph sorted by id. When
// transition joining was requested this is the joined rendering,
// otherwise the query graph itself.
func (d *DAFSA) Nodes() []*Node {
	d.checkFinished()
	return d.displayRoot().reachable()
}

// NumSequences returns the number of added sequences, duplicates included.
func (d *DAFSA) NumSequences() int { return d.numSeqs }

// NumNodes returns the number of nodes in the display graph.
func (d *DAFSA) NumNodes() int {
	return len(d.Nodes())
}

// NumEdges returns the number of edges in the display graph.
func (d *DAFSA) NumEdges() int {
	total := 0
	for _, n := range d.Nodes() {
		total += len(n.edges)
	}
	return total
}

// Alphabet returns the distinct elements used by the automaton, sorted.
// The sorted order is also the layout order used by Compact.
func (d *DAFSA) Alphabet() []string {
	seen := make(map[string]bool)
	var alphabet []string
	for _, n := range d.root.reachable() {
		for label := range n.edges {
			if !seen[label] {
				seen[label] = true
				alphabet = append(alphabet, label)
			}
		}
	}
	slices.Sort(alphabet)
	return alphabet
}

func (d *DAFSA) displayRoot() *Node {
	if d.joined != nil {
		return d.joined
	}
	return d.root
}

func (d *DAFSA) checkFinished() {
	if !d.finished {
		panic("dafsa: automaton used before Finish")
	}
}
