package dafsa_test

import (
	"fmt"
	"strings"

	"github.com/milden6/dafsa"
)

func ExampleFromWords() {
	d, err := dafsa.FromWords([]string{"tap", "taps", "top", "tops"})
	if err != nil {
		panic(err)
	}

	fmt.Println(d.Contains(dafsa.Tokenize("tops")))
	fmt.Println(d.Contains(dafsa.Tokenize("tipo")))
	fmt.Println(d.NumNodes(), d.NumEdges())
	// Output:
	// true
	// false
	// 5 5
}

func ExampleDAFSA_Search() {
	d, err := dafsa.FromWords([]string{"abhor", "acorn", "agony", "arrow"})
	if err != nil {
		panic(err)
	}

	matches, err := d.Search(dafsa.Tokenize("a?o*"))
	if err != nil {
		panic(err)
	}
	for _, m := range matches {
		fmt.Println(strings.Join(m.Sequence, ""))
	}
	// Output:
	// acorn
	// agony
}

func ExampleDAFSA_Compact() {
	d, err := dafsa.FromWords([]string{"deer", "doe", "does"})
	if err != nil {
		panic(err)
	}

	arr := d.Compact()
	fmt.Println(arr.Contains(dafsa.Tokenize("does")))
	fmt.Println(arr.NumSequences())
	// Output:
	// true
	// 3
}
