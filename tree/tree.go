// Package tree builds a branching tree out of AS-path hops and renders
// it as an ASCII diagram, for visualizing how a route propagated
// across the network hop by hop.
package tree

import (
	"fmt"
	"io"
)

// Adapted from https://github.com/Tufin/asciitree: the original walked
// '/'-delimited filesystem-style paths; Add here walks the already-
// split hops of an AS path instead.

// Tree branches on AS-path hops: each key is one hop's ASN (as a
// string), and its value is the subtree of everything selected
// downstream of that hop.
type Tree map[string]Tree

// Add walks hops into the tree, calling ifAbsent the first time a hop
// is seen at this position and ifPresent on every subsequent path that
// passes back through it.
func (tree Tree) Add(hops []string, ifAbsent, ifPresent func(string, interface{}), arg interface{}) {
	if len(hops) == 0 {
		return
	}

	nextTree, ok := tree[hops[0]]
	if !ok {
		nextTree = Tree{}
		tree[hops[0]] = nextTree
		ifAbsent(hops[0], arg)
	} else {
		ifPresent(hops[0], arg)
	}
	nextTree.Add(hops[1:], ifAbsent, ifPresent, arg)
}

// Fprint renders the tree as an ASCII box diagram of ASN hops, root
// first.
func (tree Tree) Fprint(w io.Writer, root bool, padding string) {
	if tree == nil {
		return
	}

	index := 0
	for asn, sub := range tree {
		fmt.Fprintf(w, "%s%s\n", padding+getPadding(root, getBoxType(index, len(tree))), asn)
		sub.Fprint(w, false, padding+getPadding(root, getBoxTypeExternal(index, len(tree))))
		index++
	}
}

type BoxType int

const (
	Regular BoxType = iota
	Last
	AfterLast
	Between
)

func (boxType BoxType) String() string {
	switch boxType {
	case Regular:
		return "\u251c" // ├
	case Last:
		return "\u2514" // └
	case AfterLast:
		return " "
	case Between:
		return "\u2502" // │
	default:
		panic("invalid box type")
	}
}

func getBoxType(index int, len int) BoxType {
	if index+1 == len {
		return Last
	} else if index+1 > len {
		return AfterLast
	}
	return Regular
}

func getBoxTypeExternal(index int, len int) BoxType {
	if index+1 == len {
		return AfterLast
	}
	return Between
}

func getPadding(root bool, boxType BoxType) string {
	if root {
		return ""
	}

	return boxType.String() + " "
}