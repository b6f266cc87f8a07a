package pattern

// Node is one compiled instruction, plus (for OpArity) its compiled
// sub-expressions in source order. A full pattern compiles to a single
// root Node; a multi-pattern conjunction (spec §4.7 step 4) is a slice of
// root Nodes, matched against the same cursor in sequence, concatenated
// exactly as the spec's stack program concatenation describes.
type Node struct {
	Op       Op
	Sym      []byte  // OpSymbol: the literal payload to match
	Arity    int     // OpArity: number of sub-expressions
	Children []*Node // OpArity: compiled sub-expressions, in order
	Index    int     // OpVarRef: capture index
}

// Program is a sequence of pattern roots matched against one cursor in
// turn, as produced by concatenating the compiled opcode streams of
// several patterns (spec §4.4: "compile each pattern ... and concatenate
// the opcode streams, ending with ACTION").
type Program []*Node
